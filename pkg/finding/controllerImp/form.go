package controllerImp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"geofoto/entities"
	"geofoto/pkg/finding/service"
	"geofoto/pkg/location"
	"geofoto/web"
)

var photoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string { return e.msg }

type photo struct {
	data []byte
	mime string
}

// dataURI is only ever used for the preview; the bytes are never stored.
func (p *photo) dataURI() template.URL {
	return template.URL("data:" + p.mime + ";base64," + base64.StdEncoding.EncodeToString(p.data))
}

// readPhoto returns nil, nil when the request carries no photo.
func (h *FindingCtrl) readPhoto(c echo.Context) (*photo, error) {
	fh, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if fh.Size == 0 && fh.Filename == "" {
		return nil, nil
	}

	mime, ok := photoTypes[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		return nil, &uploadError{status: http.StatusUnsupportedMediaType, msg: "Only jpg, jpeg and png photos are accepted."}
	}
	if fh.Size > h.maxUpload {
		return nil, &uploadError{status: http.StatusRequestEntityTooLarge, msg: fmt.Sprintf("The photo is larger than %d MB.", h.maxUpload>>20)}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > h.maxUpload {
		return nil, &uploadError{status: http.StatusRequestEntityTooLarge, msg: fmt.Sprintf("The photo is larger than %d MB.", h.maxUpload>>20)}
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &photo{data: data, mime: mime}, nil
}

// parseFinding converts the typed form fields. Coordinates are handled by the
// caller because they may come from the resolver instead.
func parseFinding(form web.FormValues) (*entities.Finding, error) {
	depth, err := optionalFloat("depth_mm", form.DepthMM)
	if err != nil {
		return nil, err
	}
	length, err := optionalFloat("length_mm", form.LengthMM)
	if err != nil {
		return nil, err
	}
	count := 0
	if form.PatternCount != "" {
		count, err = strconv.Atoi(form.PatternCount)
		if err != nil {
			return nil, invalid("pattern_count must be a whole number")
		}
	}
	return &entities.Finding{
		Classification:          entities.Classification(form.Classification),
		DepthMM:                 depth,
		LengthMM:                length,
		SupportMaterial:         form.SupportMaterial,
		HasRecognizablePatterns: form.HasPatterns,
		PatternCount:            count,
		HasStraightLines:        form.HasStraightLines,
		Notes:                   form.Notes,
	}, nil
}

// parseCoordinate accepts both values or neither; one alone is an error.
func parseCoordinate(latS, lonS string) (location.Coordinate, error) {
	if latS == "" || lonS == "" {
		return location.Coordinate{}, invalid("enter both latitude and longitude, or leave both blank")
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return location.Coordinate{}, invalid("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(lonS, 64)
	if err != nil {
		return location.Coordinate{}, invalid("longitude must be a number")
	}
	c := location.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return location.Coordinate{}, invalid("coordinates %s are out of range", c)
	}
	return c, nil
}

func optionalFloat(field, v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, invalid("%s must be a number", field)
	}
	return f, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", service.ErrValidation, fmt.Sprintf(format, args...))
}
