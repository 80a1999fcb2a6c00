package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"jpg ok", "photo.jpg", 1024, false},
		{"png ok", "photo.PNG", 1024, false},
		{"too large", "photo.jpg", maxUploadSize + 1, true},
		{"executable", "payload.exe", 1024, true},
		{"no extension", "photo", 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := ValidateImageFile(file)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
