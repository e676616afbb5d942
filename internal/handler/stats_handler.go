package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// StatsHandler обрабатывает отчёты об успеваемости
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler создает новый обработчик статистики
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetUserStats возвращает сводный отчёт: счётчики, точность, стрик и
// разбивку по темам
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	stats, err := h.statsService.GetUserStats(userID)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportUserStats экспортирует разбивку по темам в CSV или XLSX
// (query-параметр format, по умолчанию csv)
func (h *StatsHandler) ExportUserStats(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	format := c.DefaultQuery("format", "csv")

	stats, err := h.statsService.GetUserStats(userID)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	filename := fmt.Sprintf("progress_report_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, stats, filename)
	default:
		h.exportCSV(c, stats, filename)
	}
}

// exportCSV экспортирует отчёт в CSV с правильным экранированием спецсимволов
func (h *StatsHandler) exportCSV(c *gin.Context, stats *service.UserStats, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Тема", "Попыток", "Правильных", "Точность (%)", "Среднее время (с)"})

	for _, ts := range stats.TopicStats {
		accuracy := 0.0
		if ts.Attempts > 0 {
			accuracy = float64(ts.Correct) / float64(ts.Attempts) * 100
		}
		writer.Write([]string{
			sanitizeForExcel(ts.TopicName),
			strconv.Itoa(ts.Attempts),
			strconv.Itoa(ts.Correct),
			fmt.Sprintf("%.1f", accuracy),
			fmt.Sprintf("%.1f", ts.AvgTimeSec),
		})
	}

	// Итоговая строка
	writer.Write([]string{
		"ИТОГО",
		strconv.FormatInt(stats.TotalAttempts, 10),
		strconv.FormatInt(stats.CorrectAttempts, 10),
		fmt.Sprintf("%.1f", stats.AccuracyPct),
		fmt.Sprintf("%.1f", stats.AvgTimeSec),
	})
}

// exportXLSX экспортирует отчёт в Excel с использованием StreamWriter
func (h *StatsHandler) exportXLSX(c *gin.Context, stats *service.UserStats, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Прогресс"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[StatsHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Тема", "Попыток", "Правильных", "Точность (%)", "Среднее время (с)"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[StatsHandler] Ошибка записи заголовков: %v", err)
	}

	for i, ts := range stats.TopicStats {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		accuracy := 0.0
		if ts.Attempts > 0 {
			accuracy = float64(ts.Correct) / float64(ts.Attempts) * 100
		}

		row := []interface{}{sanitizeForExcel(ts.TopicName), ts.Attempts, ts.Correct, accuracy, ts.AvgTimeSec}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[StatsHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	totalCell := fmt.Sprintf("A%d", len(stats.TopicStats)+2)
	totalRow := []interface{}{"ИТОГО", stats.TotalAttempts, stats.CorrectAttempts, stats.AccuracyPct, stats.AvgTimeSec}
	if err := sw.SetRow(totalCell, totalRow); err != nil {
		log.Printf("[StatsHandler] Ошибка записи итоговой строки: %v", err)
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[StatsHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[StatsHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

func (h *StatsHandler) handleStatsError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in StatsHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
