// Package httpapi exposes the breakdown processor over HTTP for the web
// upload flow: upload a screenplay, get back the generated sheets.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kinoworks/prepro/internal/app"
	"github.com/kinoworks/prepro/internal/document"
	"github.com/kinoworks/prepro/internal/export"
	"github.com/kinoworks/prepro/internal/scene"
)

// Server serves the upload API over a processor.
type Server struct {
	Proc      *app.Processor
	UploadDir string
	OutputDir string
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.POST("/preview", s.handlePreview)
		api.GET("/download/:filename", s.handleDownload)
		api.GET("/presets", s.handlePresets)
		api.GET("/columns", s.handleColumns)
	}
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": export.Presets, "default": export.DefaultPreset})
}

func (s *Server) handleColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"columns": export.AvailableColumns()})
}

// uploadResponse is the JSON body returned for a processed upload.
type uploadResponse struct {
	SceneCount  int    `json:"sceneCount"`
	Pages       int    `json:"pages"`
	Encoding    string `json:"encoding,omitempty"`
	Output      string `json:"output"`
	Summary     string `json:"summary"`
	ElapsedMs   int64  `json:"elapsedMs"`
	DownloadURL string `json:"downloadUrl"`
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	opts := app.Options{
		Preset: c.PostForm("preset"),
		Format: c.PostForm("format"),
	}
	if raw := c.PostForm("columns"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.Columns); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "columns must be a JSON string array"})
			return
		}
	}

	path, err := s.saveUpload(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(path)

	res, err := s.Proc.ProcessWith(c.Request.Context(), path, opts)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	out := filepath.Base(res.OutputPath)
	c.JSON(http.StatusOK, uploadResponse{
		SceneCount:  res.SceneCount,
		Pages:       res.Pages,
		Encoding:    res.Encoding,
		Output:      out,
		Summary:     filepath.Base(res.SummaryPath),
		ElapsedMs:   res.Elapsed.Milliseconds(),
		DownloadURL: "/api/download/" + out,
	})
}

// sceneView is the preview JSON shape for one scene.
type sceneView struct {
	Number      int      `json:"number"`
	Header      string   `json:"header"`
	Location    string   `json:"location"`
	TimeOfDay   string   `json:"timeOfDay"`
	IntExt      string   `json:"intExt"`
	Characters  []string `json:"characters"`
	WordCount   int      `json:"wordCount"`
	Description string   `json:"description"`
}

func viewOf(sc *scene.Scene) sceneView {
	return sceneView{
		Number:      sc.Number,
		Header:      sc.Header,
		Location:    sc.Location,
		TimeOfDay:   sc.TimeOfDay,
		IntExt:      sc.IntExt.String(),
		Characters:  sc.Characters,
		WordCount:   sc.WordCount,
		Description: sc.Description,
	}
}

func (s *Server) handlePreview(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	limit := 0
	if raw := c.PostForm("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
	}

	path, err := s.saveUpload(fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(path)

	scenes, err := s.Proc.Preview(c.Request.Context(), path, limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	views := make([]sceneView, 0, len(scenes))
	for _, sc := range scenes {
		views = append(views, viewOf(sc))
	}
	c.JSON(http.StatusOK, gin.H{"sceneCount": len(views), "scenes": views})
}

func (s *Server) handleDownload(c *gin.Context) {
	name := c.Param("filename")
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}
	path := filepath.Join(s.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.FileAttachment(path, name)
}

// saveUpload copies the multipart file into the upload directory under a
// timestamped name that keeps the original extension.
func (s *Server) saveUpload(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	base := filepath.Base(fh.Filename)
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), base)
	path := filepath.Join(s.UploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("save upload: %w", err)
	}
	log.Debug().Str("file", base).Str("path", path).Msg("upload saved")
	return path, nil
}

// statusFor maps processor errors onto HTTP statuses: client mistakes are
// 400, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat),
		errors.Is(err, document.ErrTooManyPages),
		errors.Is(err, document.ErrFileTooLarge),
		errors.Is(err, app.ErrTextTooShort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
