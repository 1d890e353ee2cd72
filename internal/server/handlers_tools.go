package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/devtools"
	"github.com/bobmcallan/abacus/internal/devtools/imaging"
)

// Image tool operations served under /api/tools/image/{op}.
const (
	ImageResize   = "resize"
	ImageCrop     = "crop"
	ImageCompress = "compress"
)

// handleImageTool decodes the multipart "file" upload and applies op. The
// encoded image is returned as the body with its metadata in X-Image-*
// headers; response=json returns the metadata with base64 data instead.
func (s *Server) handleImageTool(w http.ResponseWriter, r *http.Request) {
	op := r.PathValue("op")
	if op != ImageResize && op != ImageCrop && op != ImageCompress {
		WriteErrorWithCode(w, http.StatusNotFound, fmt.Sprintf("Unknown image operation %q", op), CodeNotFound)
		return
	}

	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}

	f := formReader{r: r}
	var res *imaging.Result
	switch op {
	case ImageResize:
		opts := imaging.ResizeOptions{
			Width:      f.intValue("width"),
			Height:     f.intValue("height"),
			KeepAspect: f.boolValue("keep_aspect", true),
			Format:     r.FormValue("format"),
			Quality:    f.intValue("quality"),
		}
		if f.err == nil {
			res, err = imaging.Resize(src, opts)
		}
	case ImageCrop:
		opts := imaging.CropOptions{
			X:       f.intValue("x"),
			Y:       f.intValue("y"),
			Width:   f.intValue("width"),
			Height:  f.intValue("height"),
			Format:  r.FormValue("format"),
			Quality: f.intValue("quality"),
		}
		if f.err == nil {
			res, err = imaging.Crop(src, opts)
		}
	case ImageCompress:
		opts := imaging.CompressOptions{
			Quality:     f.intValue("quality"),
			TargetBytes: f.intValue("target_kb") * 1024,
			MaxWidth:    f.intValue("max_width"),
		}
		if f.err == nil {
			res, err = imaging.Compress(src, opts)
		}
	}
	if f.err != nil {
		err = f.err
	}
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}

	s.logger.Debug().
		Str("op", op).
		Int("original_bytes", res.OriginalBytes).
		Int("bytes", res.Bytes).
		Msg("Image processed")

	if r.FormValue("response") == "json" {
		WriteJSON(w, http.StatusOK, struct {
			*imaging.Result
			ContentType string `json:"content_type"`
			Data        string `json:"data"`
		}{res, res.ContentType(), base64.StdEncoding.EncodeToString(res.Data)})
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	h.Set("X-Image-Width", strconv.Itoa(res.Width))
	h.Set("X-Image-Height", strconv.Itoa(res.Height))
	h.Set("X-Original-Bytes", strconv.Itoa(res.OriginalBytes))
	if res.Quality > 0 {
		h.Set("X-Image-Quality", strconv.Itoa(res.Quality))
	}
	if res.TargetMet != nil {
		h.Set("X-Target-Met", strconv.FormatBool(*res.TargetMet))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data)
}

// handlePDFWordCount counts the words of an uploaded PDF's text.
func (s *Server) handlePDFWordCount(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	f := formReader{r: r}
	top := f.intValue("top")
	if f.err != nil {
		s.WriteCalcError(w, r, f.err)
		return
	}
	if top == 0 {
		top = 10
	}
	res, err := devtools.PDFWordCount(data, top)
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// readUpload returns the bytes of the multipart "file" field, bounded by the
// configured upload limit.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	limit := s.app.Config.Tools.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteErrorWithCode(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload exceeds %d MB", limit>>20), CodeTooLarge)
			return nil, false
		}
		s.WriteCalcError(w, r, calc.Invalid("file", "expected a multipart/form-data upload"))
		return nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.WriteCalcError(w, r, calc.Invalid("file", "is required"))
		return nil, false
	}
	defer file.Close()
	if header.Size > limit {
		WriteErrorWithCode(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Upload exceeds %d MB", limit>>20), CodeTooLarge)
		return nil, false
	}
	data, err := io.ReadAll(file)
	if err != nil {
		s.WriteCalcError(w, r, err)
		return nil, false
	}
	return data, true
}

// formReader parses optional form values, keeping the first error.
type formReader struct {
	r   *http.Request
	err error
}

func (f *formReader) intValue(name string) int {
	v := strings.TrimSpace(f.r.FormValue(name))
	if v == "" || f.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.err = calc.Invalid(name, "must be a whole number")
	}
	return n
}

func (f *formReader) boolValue(name string, def bool) bool {
	v := strings.TrimSpace(f.r.FormValue(name))
	if v == "" || f.err != nil {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		f.err = calc.Invalid(name, "must be true or false")
		return def
	}
	return b
}
