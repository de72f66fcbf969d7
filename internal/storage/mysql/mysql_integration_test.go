//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"pousada_manicaca/internal/domain"
	mysqlrepo "pousada_manicaca/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }
func pint(i int) *int       { return &i }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestRepo_MySQL_ContentCRUD(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=pousada",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "pousada")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange
	suiteID, err := repo.CreateRoom(ctx, domain.Room{
		Name:            "Suíte Master",
		Capacity:        "2 adultos",
		Description:     "Vista para o mar.",
		PriceLowSeason:  350,
		PriceHighSeason: 480,
		Amenities:       []string{"Wi-Fi", "TV"},
		SuiteAmenities:  []string{"Varanda"},
		Featured:        true,
		ImageName:       pstr("room-master.jpg"),
		DisplayOrder:    1,
	})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	otherID, err := repo.CreateRoom(ctx, domain.Room{
		Name:         "Suíte Standard",
		Capacity:     "2 adultos",
		Description:  "Perto da praia.",
		Amenities:    []string{},
		DisplayOrder: 0,
	})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	imgID, err := repo.AddRoomImage(ctx, domain.RoomImage{
		RoomID:    suiteID,
		ImagePath: "rooms/master-1.jpg",
		Caption:   pstr("Varanda"),
	})
	if err != nil {
		t.Fatalf("AddRoomImage: %v", err)
	}

	// List reflects display_order and attaches room images.
	rooms, err := repo.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != otherID || rooms[1].ID != suiteID {
		t.Fatalf("unexpected order: %+v", rooms)
	}
	if len(rooms[1].Images) != 1 || rooms[1].Images[0].ID != imgID {
		t.Fatalf("room images not attached: %+v", rooms[1].Images)
	}
	if len(rooms[1].Amenities) != 2 || rooms[1].SuiteAmenities[0] != "Varanda" {
		t.Fatalf("json columns broken: %+v", rooms[1])
	}

	// Patch update, then verify the change landed.
	if err := repo.UpdateRoom(ctx, suiteID, domain.RoomPatch{DisplayOrder: pint(-1)}); err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	rooms, err = repo.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if rooms[0].ID != suiteID {
		t.Fatalf("patched display_order not applied: %+v", rooms)
	}

	// Identical patch affects 0 rows; the existence probe keeps it a success.
	if err := repo.UpdateRoom(ctx, suiteID, domain.RoomPatch{DisplayOrder: pint(-1)}); err != nil {
		t.Fatalf("no-change UpdateRoom: %v", err)
	}
	if err := repo.UpdateRoom(ctx, 99999, domain.RoomPatch{DisplayOrder: pint(0)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateRoom on missing id: %v, want ErrNotFound", err)
	}

	// Amenities and gallery round trips.
	amenID, err := repo.CreateAmenity(ctx, domain.Amenity{Name: "Wi-Fi", Icon: "wifi", Category: domain.AmenityCommon})
	if err != nil {
		t.Fatalf("CreateAmenity: %v", err)
	}
	if err := repo.UpdateAmenity(ctx, amenID, domain.AmenityPatch{Icon: pstr("tv")}); err != nil {
		t.Fatalf("UpdateAmenity: %v", err)
	}
	amens, err := repo.ListAmenities(ctx)
	if err != nil || len(amens) != 1 || amens[0].Icon != "tv" {
		t.Fatalf("ListAmenities: %v %+v", err, amens)
	}

	galID, err := repo.CreateGalleryImage(ctx, domain.GalleryImage{ImagePath: "gallery/front.jpg", Category: "pousada"})
	if err != nil {
		t.Fatalf("CreateGalleryImage: %v", err)
	}
	if err := repo.DeleteGalleryImage(ctx, galID); err != nil {
		t.Fatalf("DeleteGalleryImage: %v", err)
	}
	if err := repo.DeleteGalleryImage(ctx, galID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: %v, want ErrNotFound", err)
	}

	// Deleting the room cascades its images and scoped removal misses.
	if err := repo.DeleteRoom(ctx, suiteID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if err := repo.RemoveRoomImage(ctx, suiteID, imgID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("RemoveRoomImage after cascade: %v, want ErrNotFound", err)
	}
	rooms, err = repo.ListRooms(ctx)
	if err != nil || len(rooms) != 1 || rooms[0].ID != otherID {
		t.Fatalf("after delete: %v %+v", err, rooms)
	}
}
