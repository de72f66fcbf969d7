package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pousada_manicaca/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func jsonList(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	byID := map[int64]int{}
	for rows.Next() {
		var rm domain.Room
		var amenJSON, suiteJSON []byte
		var imageName sql.NullString
		if err := rows.Scan(
			&rm.ID, &rm.Name, &rm.Capacity, &rm.Description,
			&rm.PriceLowSeason, &rm.PriceHighSeason,
			&amenJSON, &suiteJSON,
			&rm.Featured, &imageName, &rm.DisplayOrder,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(amenJSON, &rm.Amenities)
		_ = json.Unmarshal(suiteJSON, &rm.SuiteAmenities)
		if imageName.Valid {
			n := imageName.String
			rm.ImageName = &n
		}
		byID[rm.ID] = len(out)
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach secondary images in a single pass.
	imgs, err := r.listRoomImages(ctx)
	if err != nil {
		return nil, err
	}
	for _, img := range imgs {
		if i, ok := byID[img.RoomID]; ok {
			out[i].Images = append(out[i].Images, img)
		}
	}
	return out, nil
}

func (r *Repo) listRoomImages(ctx context.Context) ([]domain.RoomImage, error) {
	rows, err := r.db.QueryContext(ctx, listRoomImagesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomImage
	for rows.Next() {
		var img domain.RoomImage
		var caption sql.NullString
		if err := rows.Scan(&img.ID, &img.RoomID, &img.ImagePath, &caption, &img.DisplayOrder); err != nil {
			return nil, err
		}
		if caption.Valid {
			c := caption.String
			img.Caption = &c
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *Repo) CreateRoom(ctx context.Context, rm domain.Room) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRoomSQL,
		rm.Name, rm.Capacity, rm.Description,
		rm.PriceLowSeason, rm.PriceHighSeason,
		jsonList(rm.Amenities), jsonList(rm.SuiteAmenities),
		rm.Featured, valStr(rm.ImageName), rm.DisplayOrder,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateRoom(ctx context.Context, id int64, p domain.RoomPatch) error {
	var set []string
	var args []any
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Capacity != nil {
		add("capacity", *p.Capacity)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.PriceLowSeason != nil {
		add("price_low_season", *p.PriceLowSeason)
	}
	if p.PriceHighSeason != nil {
		add("price_high_season", *p.PriceHighSeason)
	}
	if p.Amenities != nil {
		add("amenities", jsonList(*p.Amenities))
	}
	if p.SuiteAmenities != nil {
		add("suite_amenities", jsonList(*p.SuiteAmenities))
	}
	if p.Featured != nil {
		add("featured", *p.Featured)
	}
	if p.ImageName != nil {
		add("image_name", *p.ImageName)
	}
	if p.DisplayOrder != nil {
		add("display_order", *p.DisplayOrder)
	}
	return r.update(ctx, "room_types", id, set, args)
}

func (r *Repo) DeleteRoom(ctx context.Context, id int64) error {
	return r.delete(ctx, deleteRoomSQL, id)
}

func (r *Repo) AddRoomImage(ctx context.Context, img domain.RoomImage) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRoomImageSQL,
		img.RoomID, img.ImagePath, valStr(img.Caption), img.DisplayOrder)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) RemoveRoomImage(ctx context.Context, roomID, imageID int64) error {
	res, err := r.db.ExecContext(ctx, deleteRoomImageSQL, imageID, roomID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Amenities
// ---------------------------------------------------------------------------

func (r *Repo) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, listAmenitiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Amenity
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Icon, &a.Category, &a.DisplayOrder); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) CreateAmenity(ctx context.Context, a domain.Amenity) (int64, error) {
	if a.Category == "" {
		a.Category = domain.AmenityCommon
	}
	res, err := r.db.ExecContext(ctx, insertAmenitySQL, a.Name, a.Icon, string(a.Category), a.DisplayOrder)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateAmenity(ctx context.Context, id int64, p domain.AmenityPatch) error {
	var set []string
	var args []any
	if p.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Icon != nil {
		set = append(set, "icon = ?")
		args = append(args, *p.Icon)
	}
	if p.Category != nil {
		set = append(set, "category = ?")
		args = append(args, string(*p.Category))
	}
	if p.DisplayOrder != nil {
		set = append(set, "display_order = ?")
		args = append(args, *p.DisplayOrder)
	}
	return r.update(ctx, "amenities", id, set, args)
}

func (r *Repo) DeleteAmenity(ctx context.Context, id int64) error {
	return r.delete(ctx, deleteAmenitySQL, id)
}

// ---------------------------------------------------------------------------
// Gallery
// ---------------------------------------------------------------------------

func (r *Repo) ListGalleryImages(ctx context.Context) ([]domain.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx, listGallerySQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GalleryImage
	for rows.Next() {
		var g domain.GalleryImage
		if err := rows.Scan(&g.ID, &g.ImagePath, &g.Category, &g.DisplayOrder); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repo) CreateGalleryImage(ctx context.Context, g domain.GalleryImage) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertGallerySQL, g.ImagePath, g.Category, g.DisplayOrder)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateGalleryImage(ctx context.Context, id int64, p domain.GalleryImagePatch) error {
	var set []string
	var args []any
	if p.ImagePath != nil {
		set = append(set, "image_path = ?")
		args = append(args, *p.ImagePath)
	}
	if p.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *p.Category)
	}
	if p.DisplayOrder != nil {
		set = append(set, "display_order = ?")
		args = append(args, *p.DisplayOrder)
	}
	return r.update(ctx, "gallery_images", id, set, args)
}

func (r *Repo) DeleteGalleryImage(ctx context.Context, id int64) error {
	return r.delete(ctx, deleteGallerySQL, id)
}

// ---------------------------------------------------------------------------
// shared update/delete plumbing
// ---------------------------------------------------------------------------

// update applies the assembled SET clause. An empty patch is a no-op.
// MySQL reports rows *changed*, so a 0-affected result needs an existence
// probe before it can be called a miss.
func (r *Repo) update(ctx context.Context, table string, id int64, set []string, args []any) error {
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE "+table+" SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	return err
}

func (r *Repo) delete(ctx context.Context, q string, id int64) error {
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
