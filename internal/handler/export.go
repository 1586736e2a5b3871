package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"simple-board/internal/models"
	"simple-board/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the acting user's posts as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"ID", "Title", "Content", "Views", "CreatedAt", "UpdatedAt"}

func exportRow(p *models.Post) []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Title,
		p.Content,
		strconv.FormatInt(p.ViewCount, 10),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ExportHandler) ownPosts(c *gin.Context) ([]models.Post, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	var posts []models.Post
	err := h.DB.Where("author_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load posts")
		return nil, false
	}
	return posts, true
}

// ExportCSV writes the user's posts as an attached CSV file.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	posts, ok := h.ownPosts(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("posts-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for i := range posts {
		_ = w.Write(exportRow(&posts[i]))
	}
	w.Flush()
}

// ExportXLSX writes the user's posts as an attached Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	posts, ok := h.ownPosts(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Posts"
	_ = f.SetSheetName("Sheet1", sheet)
	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
	}
	for i := range posts {
		for col, value := range exportRow(&posts[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("posts-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
