package cloudinary

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewServiceRequiresCredentials(t *testing.T) {
	svc, err := NewService("", "", "", "gocart")
	require.Error(t, err)
	require.Nil(t, svc)
}

func TestNilServiceFailsCleanly(t *testing.T) {
	// An unconfigured deployment wires a nil service into the handlers;
	// uploads must error, not panic.
	var svc *Service

	_, err := svc.UploadImage(context.Background(), nil, "users")
	require.Error(t, err)

	require.Error(t, svc.Delete(context.Background(), "some-id"))
}

func TestValidateImageFile(t *testing.T) {
	require.NoError(t, ValidateImageFile(&multipart.FileHeader{Filename: "photo.png", Size: 1024}))
	require.NoError(t, ValidateImageFile(&multipart.FileHeader{Filename: "photo.JPG", Size: 1024}))

	require.Error(t, ValidateImageFile(&multipart.FileHeader{Filename: "script.exe", Size: 1024}))
	require.Error(t, ValidateImageFile(&multipart.FileHeader{Filename: "photo.png", Size: MaxImageSize + 1}))
}
