package users

// UpdateUserRequest carries the admin-editable profile fields. Anything
// outside this struct (role, isBanned, _id, timestamps) cannot reach the
// update, the handler builds the $set from these fields only.
type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Gender  *string `json:"gender"`
	Photo   *string `json:"photo"`
}

// UpdatePasswordRequest carries a self-service password change.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
