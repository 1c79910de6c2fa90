package api

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"adsopt/adapters/excel"
	"adsopt/domain/optimization"
	"adsopt/internal/errors"
	"adsopt/internal/orchestrator"
	"adsopt/internal/strategies"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"strategies": strategies.Available(s.options),
		"defaults":   s.config.DefaultStrategies,
	})
}

func (s *Server) handleTemplate(c *gin.Context) {
	var buf bytes.Buffer
	if err := excel.WriteTemplate(&buf, s.excelConfig); err != nil {
		s.respondError(c, errors.Wrap(err, "failed to build template"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="asins_template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleOptimize(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, s.config.QueueTimeout)
	defer cancel()
	if err := s.runs.Acquire(ctx, 1); err != nil {
		s.respondError(c, errors.Busy("too many optimizations in progress"))
		return
	}
	defer s.runs.Release(1)

	header, err := c.FormFile("workbook")
	if err != nil {
		s.respondError(c, errors.InvalidInput("multipart field \"workbook\" is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to open upload"))
		return
	}
	defer file.Close()

	loaded, err := s.reader.Read(file, header.Filename)
	if err != nil {
		s.respondError(c, err)
		return
	}

	names := strategies.ParseNames(c.PostForm("strategies"))
	if len(names) == 0 {
		names = s.config.DefaultStrategies
	}

	inputs := orchestrator.Inputs{InputHash: loaded.Hash}
	if tmplHeader, err := c.FormFile("asins"); err == nil {
		tmplFile, err := tmplHeader.Open()
		if err != nil {
			s.respondError(c, errors.Wrap(err, "failed to open template upload"))
			return
		}
		tmpl, err := excel.ReadTemplate(tmplFile)
		tmplFile.Close()
		if err != nil {
			s.respondError(c, err)
			return
		}
		inputs.Template = &tmpl
	}

	output, report, err := s.orchestrator.Run(loaded.Workbook, names, inputs)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := s.writer.Write(&buf, output, report); err != nil {
		s.respondError(c, errors.Wrap(err, "failed to write output workbook"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputName(header.Filename)))
	setReportHeaders(c, report)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func setReportHeaders(c *gin.Context, report *optimization.RunReport) {
	c.Header("X-Run-Id", report.RunID.String())
	c.Header("X-Run-Strategies", strings.Join(report.Selected, ","))
	c.Header("X-Run-Successful-Strategies", strconv.Itoa(report.SuccessfulStrategies))
	c.Header("X-Run-Rows-Updated", strconv.Itoa(report.TotalRowsUpdated))
	c.Header("X-Run-Conflicts", strconv.Itoa(report.ConflictCount()))
	c.Header("X-Run-Input-Hash", report.InputHash.Short())
}

// respondError writes the JSON error body. Validation failures carry the
// per-strategy messages.
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	body := gin.H{
		"error": err.Error(),
		"code":  errors.Classify(err),
	}
	var verr *optimization.ValidationError
	if stderrors.As(err, &verr) {
		body["failures"] = verr.Failures
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Warn("[API] %s %s rejected: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, body)
}

func outputName(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if base == "" || base == "." {
		base = "workbook"
	}
	return base + "_optimized.xlsx"
}
