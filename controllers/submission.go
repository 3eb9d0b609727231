package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"dev-eval-api/models"
	"dev-eval-api/services"
	"dev-eval-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Max accepted upload sizes before server-side processing.
const (
	maxPictureUploadSize = int64(10 * 1024 * 1024)
	maxArchiveUploadSize = int64(50 * 1024 * 1024)
)

// SubmissionController handles submission creation and reads.
type SubmissionController struct {
	DB       *gorm.DB
	Storage  *services.Storage
	Workflow *services.Workflow
}

func NewSubmissionController(db *gorm.DB, storage *services.Storage, workflow *services.Workflow) *SubmissionController {
	return &SubmissionController{DB: db, Storage: storage, Workflow: workflow}
}

// CreateSubmission accepts the multipart developer application: profile
// fields plus a profile picture and a zipped source archive. Every
// validation runs before any disk or database work, and a failed upload
// aborts before the row insert so no partial submission exists.
func (sc *SubmissionController) CreateSubmission(c *gin.Context) {
	userID := c.GetString("userID")

	form := utils.SubmissionForm{
		FullName:    utils.SanitizeInput(c.PostForm("full_name")),
		PhoneNumber: utils.SanitizeInput(c.PostForm("phone_number")),
		Location:    utils.SanitizeInput(c.PostForm("location")),
		Email:       utils.SanitizeInput(c.PostForm("email")),
		Hobbies:     utils.SanitizeInput(c.PostForm("hobbies")),
	}

	fieldErrors := utils.ValidateSubmissionForm(form)

	picture, err := c.FormFile("profile_picture")
	switch {
	case err != nil:
		fieldErrors["profile_picture"] = "Profile picture is required"
	case picture.Size > maxPictureUploadSize:
		fieldErrors["profile_picture"] = "Profile picture exceeds the 10MB limit"
	case !isImageUpload(picture):
		fieldErrors["profile_picture"] = "Please upload an image file"
	}

	archive, err := c.FormFile("source_code")
	switch {
	case err != nil:
		fieldErrors["source_code"] = "Source code upload is required"
	case archive.Size > maxArchiveUploadSize:
		fieldErrors["source_code"] = "Source code archive exceeds the 50MB limit"
	case !strings.HasSuffix(strings.ToLower(archive.Filename), ".zip"):
		fieldErrors["source_code"] = "Please upload a ZIP file"
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	// Refuse a second submission before any upload happens.
	exists, err := sc.Workflow.HasSubmission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing submission"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already submitted an application"})
		return
	}

	pictureBytes, err := readUpload(picture)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read profile picture"})
		return
	}

	compressed, err := services.CompressProfilePicture(pictureBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"profile_picture": "Error processing image. Please try another file."}})
		return
	}

	archiveBytes, err := readUpload(archive)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read source code archive"})
		return
	}

	// Derived names give retries upsert semantics: the same user retrying
	// overwrites instead of duplicating.
	now := time.Now()
	pictureName := fmt.Sprintf("%s-%d.jpg", userID, now.Unix())
	archiveName := fmt.Sprintf("%s-%d-%s", userID, now.Unix(), filepath.Base(archive.Filename))

	if err := sc.Storage.Upload(services.BucketProfilePictures, pictureName, compressed, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload profile picture. Please try again."})
		return
	}

	if err := sc.Storage.Upload(services.BucketSourceCode, archiveName, archiveBytes, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload source code. Please try again."})
		return
	}

	submission, err := sc.Workflow.Create(userID, services.SubmissionInput{
		FullName:    form.FullName,
		PhoneNumber: form.PhoneNumber,
		Location:    form.Location,
		Email:       form.Email,
		Hobbies:     form.Hobbies,
	}, pictureName, archiveName)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already submitted an application"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Submission received successfully",
		"submission": submission,
		"assets":     sc.assetURLs(submission),
	})
}

// GetMySubmission returns the calling developer's submission, if any. The
// shell uses a 404 here to show the form instead of the status view.
func (sc *SubmissionController) GetMySubmission(c *gin.Context) {
	userID := c.GetString("userID")

	var submission models.DeveloperSubmission
	if err := sc.DB.Where("user_id = ?", userID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission": submission,
		"assets":     sc.assetURLs(&submission),
	})
}

// GetSubmissions lists submissions for evaluators, optionally filtered by
// status and a search term over name/email/location, newest first.
func (sc *SubmissionController) GetSubmissions(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	search := strings.TrimSpace(c.Query("q"))

	if status != "" && status != "all" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	submissions, err := sc.Workflow.List(status, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmission returns one submission with resolved asset URLs.
func (sc *SubmissionController) GetSubmission(c *gin.Context) {
	id := c.Param("id")

	var submission models.DeveloperSubmission
	if err := sc.DB.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission": submission,
		"assets":     sc.assetURLs(&submission),
	})
}

func (sc *SubmissionController) assetURLs(submission *models.DeveloperSubmission) gin.H {
	return gin.H{
		"profile_picture": sc.Storage.GetPublicURL(services.BucketProfilePictures, submission.ProfilePictureURL),
		"source_code":     sc.Storage.GetPublicURL(services.BucketSourceCode, submission.SourceCodeURL),
	}
}

func isImageUpload(file *multipart.FileHeader) bool {
	contentType := file.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
