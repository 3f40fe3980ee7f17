package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/harvesting-media/dataproc/process"
	"github.com/harvesting-media/dataproc/table"
)

// previewRows is the number of records returned by /api/preview.
const previewRows = 5

type errorResponse struct {
	Error string `json:"error"`
}

type fieldInfo struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Column string `json:"column"`
}

type processInfo struct {
	Name      string       `json:"name"`
	Worksheet string       `json:"worksheet"`
	Mode      process.Mode `json:"mode"`
	Fields    []fieldInfo  `json:"fields"`
}

type previewResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

func (s *Server) index(c echo.Context) error {
	authed := false
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if _, err := s.gate.validate(cookie.Value); err == nil {
			authed = true
		}
	}

	page := struct {
		Authed      bool
		LoginFailed bool
	}{
		Authed:      authed,
		LoginFailed: c.QueryParam("login") == "failed",
	}

	var b bytes.Buffer
	if err := s.pages.ExecuteTemplate(&b, "index.html", page); err != nil {
		return err
	}

	return c.HTMLBlob(http.StatusOK, b.Bytes())
}

func (s *Server) login(c echo.Context) error {
	token, err := s.gate.login(c.FormValue("password"))
	if err != nil {
		logrus.WithField("remote_ip", c.RealIP()).Warn("Password gate rejected login")
		return c.Redirect(http.StatusSeeOther, "/?login=failed")
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) processes(c echo.Context) error {
	list := []processInfo{}
	for _, d := range process.Processes() {
		fields := []fieldInfo{}
		for _, f := range d.Fields {
			fields = append(fields, fieldInfo{
				Key:    f.Key,
				Label:  f.Label,
				Column: f.Column,
			})
		}

		list = append(list, processInfo{
			Name:      d.Name,
			Worksheet: d.Worksheet,
			Mode:      d.Mode,
			Fields:    fields,
		})
	}

	return c.JSON(http.StatusOK, list)
}

func (s *Server) preview(c echo.Context) error {
	src, err := s.upload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	rows := src.Records
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}

	return c.JSON(http.StatusOK, previewResponse{
		Columns: src.Header,
		Rows:    rows,
		Total:   len(src.Records),
	})
}

func (s *Server) importFile(c echo.Context) error {
	d, err := process.Lookup(c.FormValue("process"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	src, err := s.upload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	mapping := map[string]string{}
	for _, f := range d.Fields {
		mapping[f.Key] = c.FormValue("map_" + f.Key)
	}

	out, err := d.Apply(src, mapping)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()

	switch d.Mode {
	case process.Append:
		err = s.writer.Append(ctx, d.Worksheet, out)
	default:
		err = s.writer.Overwrite(ctx, d.Worksheet, out)
	}

	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"process":   d.Name,
			"worksheet": d.Worksheet,
		}).Error("Worksheet write failed")

		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}

	summary := d.Summarize(out)

	logrus.WithFields(logrus.Fields{
		"process":       summary.Process,
		"worksheet":     summary.Worksheet,
		"mode":          summary.Mode,
		"rows":          summary.Rows,
		"unique_emails": summary.UniqueEmails,
	}).Info("Import complete")

	return c.JSON(http.StatusOK, summary)
}

// upload parses the uploaded file from the multipart form. The header flag
// defaults to true, matching the UI checkbox.
func (s *Server) upload(c echo.Context) (*table.Table, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open uploaded file (%w)", err)
	}

	defer f.Close()

	hasHeaders := true
	if v := c.FormValue("has_headers"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			hasHeaders = b
		}
	}

	return table.Read(f, fh.Filename, hasHeaders)
}
