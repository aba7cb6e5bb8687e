package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/httpresp"
	"github.com/BruksfildServices01/barberin/internal/media"
)

// PhotoStore is satisfied by *storage.S3Store.
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

var errStorageDisabled = httperr.Unavailable("Photo storage is not configured")

// uploadPhoto reads the multipart "photo" field, normalises it to WebP and
// stores it under prefix. It answers the client itself on bad input and
// returns ok=false in that case.
func uploadPhoto(c *gin.Context, store PhotoStore, prefix string, opts media.Options) (string, bool, error) {
	if store == nil {
		return "", false, errStorageDisabled
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		httpresp.ValidationError(c, []string{"photo is required"})
		return "", false, nil
	}
	if fh.Size > media.MaxUploadBytes {
		httpresp.Error(c, http.StatusRequestEntityTooLarge, "photo must be at most 5 MB")
		return "", false, nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", false, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := media.ToWebP(f, opts)
	if errors.Is(err, media.ErrNotImage) {
		httpresp.ValidationError(c, []string{"photo must be a JPEG, PNG, GIF or WebP image"})
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.NewString())
	url, err := store.Put(c.Request.Context(), key, media.ContentType, data)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}
