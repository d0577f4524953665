package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/profast/parcel-api/internal/web"
)

// ImageStore saves uploaded images and returns their public URL.
type ImageStore interface {
	UploadImage(file *multipart.FileHeader, folder string) (string, error)
}

func UploadParcelImage(images ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			badRequest(c, "image file is required")
			return
		}

		url, err := images.UploadImage(file, "parcels")
		if err != nil {
			fail(c, err)
			return
		}

		web.Respond(c, http.StatusCreated, "Image uploaded", gin.H{"url": url})
	}
}
