// Package checkserver serves parcel checks as JSON.
package checkserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"eudr-checker/eudr"
	"eudr-checker/metrics"
	"eudr-checker/parcel"

	log "github.com/sirupsen/logrus"
)

const Name = "EUDR Visual Checker API"

type CheckServer struct {
	Checker        *eudr.Checker
	MaxUploadBytes int64
}

func New(c *eudr.Checker, maxUploadBytes int64) *CheckServer {
	return &CheckServer{
		Checker:        c,
		MaxUploadBytes: maxUploadBytes,
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("check encode: %v", err)
	}
}

func (s *CheckServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	defer func() {
		metrics.Requests.WithLabelValues("check", strconv.Itoa(code)).Inc()
	}()

	jsonError := func(err error) {
		code = eudr.HTTPStatus(err)
		writeJSON(w, code, &errorResponse{Detail: err.Error()})
	}

	p, err := parcel.FromRequest(w, r, s.MaxUploadBytes)
	if err != nil {
		log.Errorf("check parse: %v", err)
		jsonError(err)
		return
	}
	log.Infof("Checking parcel at %v, bound %v", p.Centroid, p.Bound)

	res, err := s.Checker.Check(r.Context(), p.Centroid, p.Bound)
	if err != nil {
		log.Errorf("check: %v", err)
		jsonError(err)
		return
	}
	writeJSON(w, code, res)
}

type infoResponse struct {
	Name      string   `json:"name"`
	Endpoints []string `json:"endpoints"`
}

// ServeInfo describes the API.
func ServeInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &infoResponse{
		Name:      Name,
		Endpoints: []string{"POST /check", "POST /report", "GET /metrics", "GET /healthz"},
	})
}
