package parcel

import (
	"io"
	"net/http"

	"eudr-checker/eudr"
)

// UploadField is the multipart field carrying the GeoJSON file.
const UploadField = "geojson_file"

// FromRequest reads the uploaded GeoJSON file of a multipart request and
// parses it. Requests larger than maxBytes are rejected.
func FromRequest(w http.ResponseWriter, r *http.Request, maxBytes int64) (*Parcel, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, invalid("multipart form", err)
	}
	f, _, err := r.FormFile(UploadField)
	if err != nil {
		return nil, &eudr.InvalidInputError{Reason: "missing " + UploadField + " upload", Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, invalid("read upload", err)
	}
	return Parse(data)
}
