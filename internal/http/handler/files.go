package handler

import (
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"uploadapi/internal/model"
	"uploadapi/internal/service"
)

// param returns the percent-decoded path parameter key. The result is copied out of
// the request buffer, which fasthttp reuses once the handler returns.
func param(c *fiber.Ctx, key string) string {
	v := c.Params(key)
	if dec, err := url.PathUnescape(v); err == nil {
		v = dec
	}
	return utils.CopyString(v)
}

type successResponse struct {
	Success bool `json:"success"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type createCategoryRequest struct {
	Name *string `json:"name"`
}

type createCategoryResponse struct {
	Success  bool   `json:"success"`
	Category string `json:"category"`
}

type documentsResponse struct {
	Documents []model.StoredFile `json:"documents"`
}

type photosResponse struct {
	Photos []string `json:"photos"`
}

// ListCategories godoc
// @Summary List document categories
// @Tags documents
// @Produce json
// @Success 200 {object} categoriesResponse
// @Router /documents/categories [get]
func ListCategories(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(categoriesResponse{Categories: svc.Categories(c.UserContext())})
	}
}

// CreateCategory godoc
// @Summary Create a document category
// @Description The name is trimmed, lowercased and whitespace runs become hyphens.
// @Tags documents
// @Accept json
// @Produce json
// @Param body body createCategoryRequest true "category name"
// @Success 200 {object} createCategoryResponse
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /documents/categories [post]
func CreateCategory(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createCategoryRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil || req.Name == nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid category name")
		}

		name, err := svc.CreateCategory(c.UserContext(), *req.Name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(createCategoryResponse{Success: true, Category: name})
	}
}

// Upload godoc
// @Summary Upload files into a category
// @Description Documents are read from the "documents" field, images from "photos".
// @Description The whole batch is rejected when the category is unknown, one file has a disallowed type
// @Description or files are sent under any other field.
// @Tags documents,images
// @Accept multipart/form-data
// @Produce json
// @Param category path string true "category"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents/upload/{category} [post]
// @Router /upload/{category} [post]
func Upload(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "multipart form expected")
		}
		for field := range form.File {
			if field != svc.Field() {
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "unexpected file field "+field)
			}
		}

		if _, err := svc.Upload(c.UserContext(), param(c, "category"), form.File[svc.Field()]); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(successResponse{Success: true})
	}
}

// ListDocuments godoc
// @Summary List the documents of a category
// @Tags documents
// @Produce json
// @Param category path string true "category"
// @Success 200 {object} documentsResponse
// @Failure 400 {object} errorPayload
// @Router /documents/{category} [get]
func ListDocuments(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext(), param(c, "category"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(documentsResponse{Documents: files})
	}
}

// ListPhotos godoc
// @Summary List the photo names of a category
// @Tags images
// @Produce json
// @Param category path string true "category"
// @Success 200 {object} photosResponse
// @Failure 400 {object} errorPayload
// @Router /photos/{category} [get]
func ListPhotos(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext(), param(c, "category"))
		if err != nil {
			return writeServiceError(c, err)
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		return c.JSON(photosResponse{Photos: names})
	}
}

// DeleteFile godoc
// @Summary Delete a file from a category
// @Tags documents,images
// @Produce json
// @Param category path string true "category"
// @Param filename path string true "stored file name"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents/{category}/{filename} [delete]
// @Router /photos/{category}/{filename} [delete]
func DeleteFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), param(c, "category"), param(c, "filename")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(successResponse{Success: true})
	}
}
