package breeds

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"dog-breeds-api/internal/platform/httpclient"
	"dog-breeds-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}

	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc, log))
		dr.Post("/", createDogHandler(svc, log))

		dr.Get("/{id}", getDogHandler(svc, log))
		dr.Put("/{id}", updateDogHandler(svc, log))
		dr.Delete("/{id}", deleteDogHandler(svc, log))
	})
}

// dogRequest sirve para POST y PUT. En PUT los campos ausentes no se tocan.
type dogRequest struct {
	Name         *string  `json:"name"`
	HeightMin    *Measure `json:"height_min" swaggertype:"number"`
	HeightMax    *Measure `json:"height_max" swaggertype:"number"`
	WeightMin    *Measure `json:"weight_min" swaggertype:"number"`
	WeightMax    *Measure `json:"weight_max" swaggertype:"number"`
	YearsLife    *string  `json:"years_life"`
	Image        *string  `json:"image"`
	Temperaments []int64  `json:"temperaments"`
}

type dogResponse struct {
	ID           BreedID `json:"id" swaggertype:"string"`
	Name         string  `json:"name"`
	HeightMin    Measure `json:"height_min" swaggertype:"number"`
	HeightMax    Measure `json:"height_max" swaggertype:"number"`
	WeightMin    Measure `json:"weight_min" swaggertype:"number"`
	WeightMax    Measure `json:"weight_max" swaggertype:"number"`
	YearsLife    string  `json:"years_life"`
	Image        string  `json:"image"`
	Temperaments string  `json:"temperaments"`
}

type temperamentTagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// dogDetailResponse es la forma devuelta por create/update: temperamentos como objetos.
type dogDetailResponse struct {
	ID           BreedID                  `json:"id" swaggertype:"string"`
	Name         string                   `json:"name"`
	HeightMin    Measure                  `json:"height_min" swaggertype:"number"`
	HeightMax    Measure                  `json:"height_max" swaggertype:"number"`
	WeightMin    Measure                  `json:"weight_min" swaggertype:"number"`
	WeightMax    Measure                  `json:"weight_max" swaggertype:"number"`
	YearsLife    string                   `json:"years_life"`
	Image        string                   `json:"image"`
	Temperaments []temperamentTagResponse `json:"temperaments"`
}

type createdResponse struct {
	SuccMsg string            `json:"succMsg"`
	NewDog  dogDetailResponse `json:"newDog"`
}

type updatedResponse struct {
	SuccMsg    string            `json:"succMsg"`
	UpdatedDog dogDetailResponse `json:"updatedDog"`
}

type deletedResponse struct {
	SuccMsg string `json:"succMsg"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const msgDogNotFound = "Dog not found!"

var errMalformedBody = errors.New("invalid json")

// decodeDogRequest decodifica campo por campo para que el error nombre el campo inválido
// (ej. height_min: "abc"). Campos desconocidos se ignoran.
func decodeDogRequest(body io.Reader) (dogRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return dogRequest{}, errMalformedBody
	}

	var req dogRequest
	targets := map[string]any{
		"name":         &req.Name,
		"height_min":   &req.HeightMin,
		"height_max":   &req.HeightMax,
		"weight_min":   &req.WeightMin,
		"weight_max":   &req.WeightMax,
		"years_life":   &req.YearsLife,
		"image":        &req.Image,
		"temperaments": &req.Temperaments,
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		dst, ok := targets[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(fields[key], dst); err != nil {
			return dogRequest{}, errors.Wrapf(ErrInvalidInput, "invalid %s", key)
		}
	}
	return req, nil
}

// listDogsHandler godoc
// @Summary  List dogs (API + DB), optionally filtered by name
// @Tags     dogs
// @Produce  json
// @Param    name query string false "case-insensitive substring"
// @Success  200 {array} dogResponse
// @Failure  404 {string} string
// @Router   /dogs [get]
func listDogsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")

		items, err := svc.Search(r.Context(), name)
		if err != nil {
			writeFault(w, r, log, err)
			return
		}

		if name != "" && len(items) == 0 {
			writeText(w, http.StatusNotFound, fmt.Sprintf("Dog with name %s not exist!", name))
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toDogResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getDogHandler godoc
// @Summary  Get one dog by id (UUID => DB, number => API)
// @Tags     dogs
// @Produce  json
// @Param    id path string true "dog id"
// @Success  200 {object} dogResponse
// @Failure  404 {string} string
// @Router   /dogs/{id} [get]
func getDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")

		// Un id que no es UUID ni número entero no existe en ninguna fuente:
		// cae del lado de la API, igual que cualquier id no-UUID.
		id, err := ParseID(raw)
		if err != nil {
			writeText(w, http.StatusNotFound, fmt.Sprintf("Dog with id %s not exist in the API!", raw))
			return
		}

		b, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				where := "API"
				if id.IsLocal() {
					where = "DB"
				}
				writeText(w, http.StatusNotFound, fmt.Sprintf("Dog with id %s not exist in the %s!", raw, where))
				return
			}
			writeFault(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(b))
	}
}

// createDogHandler godoc
// @Summary  Create a dog in the DB
// @Tags     dogs
// @Accept   json
// @Produce  json
// @Param    body body dogRequest true "dog"
// @Success  201 {object} createdResponse
// @Failure  400 {object} errorResponse
// @Router   /dogs [post]
func createDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeDogRequest(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		in := CreateInput{
			Name:           deref(req.Name),
			Height:         Range{Min: derefMeasure(req.HeightMin), Max: derefMeasure(req.HeightMax)},
			Weight:         Range{Min: derefMeasure(req.WeightMin), Max: derefMeasure(req.WeightMax)},
			YearsLife:      deref(req.YearsLife),
			Image:          deref(req.Image),
			TemperamentIDs: req.Temperaments,
		}

		b, err := svc.Create(r.Context(), in)
		if err != nil {
			writeFault(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, createdResponse{
			SuccMsg: "Dog Created Successfully!",
			NewDog:  toDogDetailResponse(b),
		})
	}
}

// updateDogHandler godoc
// @Summary  Update a DB dog; temperaments, if sent, replace the current set
// @Tags     dogs
// @Accept   json
// @Produce  json
// @Param    id   path string     true "dog UUID"
// @Param    body body dogRequest true "fields to change"
// @Success  200 {object} updatedResponse
// @Failure  404 {object} errorResponse
// @Router   /dogs/{id} [put]
func updateDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: msgDogNotFound})
			return
		}

		req, err := decodeDogRequest(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		b, err := svc.Update(r.Context(), id, UpdateInput{
			Name:           req.Name,
			HeightMin:      req.HeightMin,
			HeightMax:      req.HeightMax,
			WeightMin:      req.WeightMin,
			WeightMax:      req.WeightMax,
			YearsLife:      req.YearsLife,
			Image:          req.Image,
			TemperamentIDs: req.Temperaments,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: msgDogNotFound})
				return
			}
			writeFault(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusOK, updatedResponse{
			SuccMsg:    "Dog Updated Successfully!",
			UpdatedDog: toDogDetailResponse(b),
		})
	}
}

// deleteDogHandler godoc
// @Summary  Delete a DB dog
// @Tags     dogs
// @Produce  json
// @Param    id path string true "dog UUID"
// @Success  200 {object} deletedResponse
// @Failure  404 {object} errorResponse
// @Router   /dogs/{id} [delete]
func deleteDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseID(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: msgDogNotFound})
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: msgDogNotFound})
				return
			}
			writeFault(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusOK, deletedResponse{SuccMsg: "Dog Deleted Successfully!"})
	}
}

func toDogResponse(b Breed) dogResponse {
	return dogResponse{
		ID:           b.ID,
		Name:         b.Name,
		HeightMin:    b.Height.Min,
		HeightMax:    b.Height.Max,
		WeightMin:    b.Weight.Min,
		WeightMax:    b.Weight.Max,
		YearsLife:    b.YearsLife,
		Image:        b.Image,
		Temperaments: b.Temperament,
	}
}

func toDogDetailResponse(b Breed) dogDetailResponse {
	tags := make([]temperamentTagResponse, 0, len(b.Temperaments))
	for _, t := range b.Temperaments {
		tags = append(tags, temperamentTagResponse{ID: t.ID, Name: t.Name})
	}
	return dogDetailResponse{
		ID:           b.ID,
		Name:         b.Name,
		HeightMin:    b.Height.Min,
		HeightMax:    b.Height.Max,
		WeightMin:    b.Weight.Min,
		WeightMax:    b.Weight.Max,
		YearsLife:    b.YearsLife,
		Image:        b.Image,
		Temperaments: tags,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefMeasure(m *Measure) Measure {
	if m == nil {
		return None()
	}
	return *m
}

// writeFault es el manejador genérico: traduce errores de upstream/validación a status HTTP.
func writeFault(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var (
		httpErr *httpclient.HTTPError
		netErr  *httpclient.NetworkError
	)

	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidID):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrNotFound):
		status, msg = http.StatusNotFound, msgDogNotFound
	case errors.As(err, &httpErr):
		status, msg = http.StatusBadGateway, fmt.Sprintf("API request failed with status %d", httpErr.StatusCode)
	case errors.As(err, &netErr):
		status, msg = http.StatusGatewayTimeout, "No response received from API"
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", map[string]any{
			"error":      err,
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": chimw.GetReqID(r.Context()),
		})
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (breeds/temperaments)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
