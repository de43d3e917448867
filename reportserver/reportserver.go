// Package reportserver renders a side-by-side viewer of the imagery selected
// for a parcel.
package reportserver

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"eudr-checker/eudr"
	"eudr-checker/metrics"
	"eudr-checker/parcel"

	log "github.com/sirupsen/logrus"
)

//go:embed viewer.html
var viewerHTML string

var viewer = template.Must(template.New("viewer").Parse(viewerHTML))

type ReportServer struct {
	Checker        *eudr.Checker
	TiTiler        string
	MaxUploadBytes int64
}

func New(c *eudr.Checker, titiler string, maxUploadBytes int64) *ReportServer {
	return &ReportServer{
		Checker:        c,
		TiTiler:        titiler,
		MaxUploadBytes: maxUploadBytes,
	}
}

type viewData struct {
	CentroidLat  float64
	CentroidLon  float64
	Geometry     interface{}
	Pre2021      *eudr.SceneMatch
	Recent       *eudr.SceneMatch
	PreTiles     string
	RecentTiles  string
	Windows      eudr.DateWindow
	TiTiler      string
	GoogleStatic string
}

func (s *ReportServer) render(p *parcel.Parcel, res *eudr.CheckResult) ([]byte, error) {
	var geom interface{}
	if err := json.Unmarshal(p.Raw, &geom); err != nil {
		return nil, fmt.Errorf("report geometry: %w", err)
	}
	d := &viewData{
		CentroidLat: p.Centroid.Lat(),
		CentroidLon: p.Centroid.Lon(),
		Geometry:    geom,
		Pre2021:     res.Pre2021,
		Recent:      res.Recent,
		PreTiles:    res.Pre2021.TileURL(),
		RecentTiles: res.Recent.TileURL(),
		Windows:     res.Windows,
		TiTiler:     s.TiTiler,
	}
	if res.GoogleStatic != nil {
		d.GoogleStatic = *res.GoogleStatic
	}
	buf := new(bytes.Buffer)
	if err := viewer.Execute(buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	defer func() {
		metrics.Requests.WithLabelValues("report", strconv.Itoa(code)).Inc()
	}()

	fail := func(err error) {
		code = eudr.HTTPStatus(err)
		http.Error(w, err.Error(), code)
	}

	p, err := parcel.FromRequest(w, r, s.MaxUploadBytes)
	if err != nil {
		log.Errorf("report parse: %v", err)
		fail(err)
		return
	}

	res, err := s.Checker.Check(r.Context(), p.Centroid, p.Bound)
	if err != nil {
		log.Errorf("report: %v", err)
		fail(err)
		return
	}

	page, err := s.render(p, res)
	if err != nil {
		log.Errorf("report render: %v", err)
		fail(err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
