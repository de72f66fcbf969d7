// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pousada_manicaca/internal/app"
	"pousada_manicaca/internal/domain"
)

type Handlers struct {
	Svc        *app.ContentService
	Res        *app.Resolver
	AdminToken string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/content", h.getContent)
	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Get("/v1/amenities", h.listAmenities)
	s.mux.Get("/v1/gallery", h.listGallery)

	s.mux.Route("/v1/admin", func(r chi.Router) {
		r.Use(RequireToken(h.AdminToken))

		r.Post("/refresh", h.refresh)

		r.Post("/rooms", h.createRoom)
		r.Put("/rooms/{id}", h.updateRoom)
		r.Delete("/rooms/{id}", h.deleteRoom)
		r.Post("/rooms/{id}/images", h.addRoomImage)
		r.Delete("/rooms/{id}/images/{imageID}", h.removeRoomImage)

		r.Post("/amenities", h.createAmenity)
		r.Put("/amenities/{id}", h.updateAmenity)
		r.Delete("/amenities/{id}", h.deleteAmenity)

		r.Post("/gallery", h.addGalleryImage)
		r.Put("/gallery/{id}", h.updateGalleryImage)
		r.Delete("/gallery/{id}", h.removeGalleryImage)

		r.Post("/images", h.uploadImage)
	})
}

// ---------------------------------------------------------------------------
// wire shapes
// ---------------------------------------------------------------------------

type roomImageJSON struct {
	ID           int64   `json:"id"`
	URL          string  `json:"url"`
	Caption      *string `json:"caption,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type roomJSON struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Capacity        string          `json:"capacity"`
	Description     string          `json:"description"`
	PriceLowSeason  float64         `json:"price_low_season"`
	PriceHighSeason float64         `json:"price_high_season"`
	Amenities       []string        `json:"amenities"`
	SuiteAmenities  []string        `json:"suite_amenities"`
	Featured        bool            `json:"featured"`
	ImageURL        string          `json:"image_url"`
	DisplayOrder    int             `json:"display_order"`
	Images          []roomImageJSON `json:"images"`
}

type amenityJSON struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Symbol       string `json:"symbol"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"display_order"`
}

type galleryImageJSON struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"display_order"`
}

type contentJSON struct {
	Rooms     []roomJSON         `json:"rooms"`
	Amenities []amenityJSON      `json:"amenities"`
	Gallery   []galleryImageJSON `json:"gallery"`
	State     string             `json:"state"`
}

func (h *Handlers) roomJSON(r *http.Request, rm domain.Room) roomJSON {
	out := roomJSON{
		ID:              rm.ID,
		Name:            rm.Name,
		Capacity:        rm.Capacity,
		Description:     rm.Description,
		PriceLowSeason:  rm.PriceLowSeason,
		PriceHighSeason: rm.PriceHighSeason,
		Amenities:       rm.Amenities,
		SuiteAmenities:  rm.SuiteAmenities,
		Featured:        rm.Featured,
		ImageURL:        h.Res.ResolvePtr(r.Context(), rm.ImageName),
		DisplayOrder:    rm.DisplayOrder,
		Images:          []roomImageJSON{},
	}
	if out.Amenities == nil {
		out.Amenities = []string{}
	}
	if out.SuiteAmenities == nil {
		out.SuiteAmenities = []string{}
	}
	for _, img := range rm.Images {
		out.Images = append(out.Images, roomImageJSON{
			ID:           img.ID,
			URL:          h.Res.Resolve(r.Context(), img.ImagePath),
			Caption:      img.Caption,
			DisplayOrder: img.DisplayOrder,
		})
	}
	return out
}

func (h *Handlers) contentJSON(r *http.Request, snap domain.ContentSnapshot) contentJSON {
	out := contentJSON{
		Rooms:     []roomJSON{},
		Amenities: []amenityJSON{},
		Gallery:   []galleryImageJSON{},
		State:     snap.State.String(),
	}
	for _, rm := range snap.Rooms {
		out.Rooms = append(out.Rooms, h.roomJSON(r, rm))
	}
	for _, a := range snap.Amenities {
		out.Amenities = append(out.Amenities, amenityJSON{
			ID: a.ID, Name: a.Name, Icon: a.Icon,
			Symbol: string(a.Symbol()), Category: string(a.Category),
			DisplayOrder: a.DisplayOrder,
		})
	}
	for _, g := range snap.GalleryImages {
		out.Gallery = append(out.Gallery, galleryImageJSON{
			ID: g.ID, URL: h.Res.Resolve(r.Context(), g.ImagePath),
			Category: g.Category, DisplayOrder: g.DisplayOrder,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// shared response plumbing
// ---------------------------------------------------------------------------

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the error taxonomy onto HTTP statuses, naming the
// attempted action so a failed write shows up as an explicit notice.
func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case domain.IsValidation(err):
		writeProblem(w, http.StatusBadRequest, "Invalid "+action, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", action+": record not found")
	default:
		var te *domain.TransportError
		if errors.As(err, &te) {
			writeProblem(w, http.StatusBadGateway, "Backend Failure", err.Error())
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", action+" failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "must be a positive number")
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// public reads
// ---------------------------------------------------------------------------

func (h *Handlers) getContent(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.contentJSON(r, h.Svc.Snapshot()))
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.contentJSON(r, h.Svc.Snapshot()).Rooms)
}

func (h *Handlers) listAmenities(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.contentJSON(r, h.Svc.Snapshot()).Amenities)
}

func (h *Handlers) listGallery(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.contentJSON(r, h.Svc.Snapshot()).Gallery)
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Refresh(r.Context()); err != nil {
		writeError(w, "refresh", domain.Transport("refresh", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": h.Svc.State().String()})
}

// ---------------------------------------------------------------------------
// rooms
// ---------------------------------------------------------------------------

type roomRequest struct {
	Name            string   `json:"name"`
	Capacity        string   `json:"capacity"`
	Description     string   `json:"description"`
	PriceLowSeason  float64  `json:"price_low_season"`
	PriceHighSeason float64  `json:"price_high_season"`
	Amenities       []string `json:"amenities"`
	SuiteAmenities  []string `json:"suite_amenities"`
	Featured        bool     `json:"featured"`
	ImageName       *string  `json:"image_name"`
	DisplayOrder    int      `json:"display_order"`
}

type roomPatchRequest struct {
	Name            *string   `json:"name"`
	Capacity        *string   `json:"capacity"`
	Description     *string   `json:"description"`
	PriceLowSeason  *float64  `json:"price_low_season"`
	PriceHighSeason *float64  `json:"price_high_season"`
	Amenities       *[]string `json:"amenities"`
	SuiteAmenities  *[]string `json:"suite_amenities"`
	Featured        *bool     `json:"featured"`
	ImageName       *string   `json:"image_name"`
	DisplayOrder    *int      `json:"display_order"`
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("body", "malformed JSON")
	}
	return nil
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "room", err)
		return
	}
	id, err := h.Svc.CreateRoom(r.Context(), domain.Room{
		Name:            req.Name,
		Capacity:        req.Capacity,
		Description:     req.Description,
		PriceLowSeason:  req.PriceLowSeason,
		PriceHighSeason: req.PriceHighSeason,
		Amenities:       req.Amenities,
		SuiteAmenities:  req.SuiteAmenities,
		Featured:        req.Featured,
		ImageName:       req.ImageName,
		DisplayOrder:    req.DisplayOrder,
	})
	if err != nil {
		writeError(w, "create room", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, "room id", err)
		return
	}
	var req roomPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "room", err)
		return
	}
	err = h.Svc.UpdateRoom(r.Context(), id, domain.RoomPatch{
		Name:            req.Name,
		Capacity:        req.Capacity,
		Description:     req.Description,
		PriceLowSeason:  req.PriceLowSeason,
		PriceHighSeason: req.PriceHighSeason,
		Amenities:       req.Amenities,
		SuiteAmenities:  req.SuiteAmenities,
		Featured:        req.Featured,
		ImageName:       req.ImageName,
		DisplayOrder:    req.DisplayOrder,
	})
	if err != nil {
		writeError(w, "update room", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, "room id", err)
		return
	}
	if err := h.Svc.DeleteRoom(r.Context(), id); err != nil {
		writeError(w, "delete room", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) addRoomImage(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "room id", err)
		return
	}
	var req struct {
		ImagePath    string  `json:"image_path"`
		Caption      *string `json:"caption"`
		DisplayOrder int     `json:"display_order"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "room image", err)
		return
	}
	id, err := h.Svc.AddRoomImage(r.Context(), domain.RoomImage{
		RoomID:       roomID,
		ImagePath:    req.ImagePath,
		Caption:      req.Caption,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeError(w, "add room image", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) removeRoomImage(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "room id", err)
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		writeError(w, "image id", err)
		return
	}
	if err := h.Svc.RemoveRoomImage(r.Context(), roomID, imageID); err != nil {
		writeError(w, "remove room image", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// amenities
// ---------------------------------------------------------------------------

func (h *Handlers) createAmenity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Icon         string `json:"icon"`
		Category     string `json:"category"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "amenity", err)
		return
	}
	id, err := h.Svc.CreateAmenity(r.Context(), domain.Amenity{
		Name:         req.Name,
		Icon:         req.Icon,
		Category:     domain.AmenityCategory(req.Category),
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeError(w, "create amenity", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) updateAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, "amenity id", err)
		return
	}
	var req struct {
		Name         *string `json:"name"`
		Icon         *string `json:"icon"`
		Category     *string `json:"category"`
		DisplayOrder *int    `json:"display_order"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "amenity", err)
		return
	}
	var cat *domain.AmenityCategory
	if req.Category != nil {
		c := domain.AmenityCategory(*req.Category)
		cat = &c
	}
	err = h.Svc.UpdateAmenity(r.Context(), id, domain.AmenityPatch{
		Name:         req.Name,
		Icon:         req.Icon,
		Category:     cat,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeError(w, "update amenity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, "amenity id", err)
		return
	}
	if err := h.Svc.DeleteAmenity(r.Context(), id); err != nil {
		writeError(w, "delete amenity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// gallery
// ---------------------------------------------------------------------------

func (h *Handlers) addGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImagePath    string `json:"image_path"`
		Category     string `json:"category"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "gallery image", err)
		return
	}
	id, err := h.Svc.AddGalleryImage(r.Context(), domain.GalleryImage{
		ImagePath:    req.ImagePath,
		Category:     req.Category,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeError(w, "add gallery image", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) updateGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, "gallery id", err)
		return
	}
	var req struct {
		ImagePath    *string `json:"image_path"`
		Category     *string `json:"category"`
		DisplayOrder *int    `json:"display_order"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, "gallery image", err)
		return
	}
	err = h.Svc.UpdateGalleryImage(r.Context(), id, domain.GalleryImagePatch{
		ImagePath:    req.ImagePath,
		Category:     req.Category,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		writeError(w, "update gallery image", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) removeGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, "gallery id", err)
		return
	}
	if err := h.Svc.RemoveGalleryImage(r.Context(), id); err != nil {
		writeError(w, "remove gallery image", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// uploads
// ---------------------------------------------------------------------------

const maxUploadBytes = 10 << 20

func (h *Handlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, "upload", domain.Invalid("body", "malformed multipart form"))
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, "upload", domain.Invalid("file", "missing file field"))
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}
	path, err := h.Svc.UploadImage(r.Context(), hdr.Filename, hdr.Header.Get("Content-Type"), folder, file)
	if err != nil {
		writeError(w, "upload image", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"path": path,
		"url":  h.Res.Resolve(r.Context(), path),
	})
}
