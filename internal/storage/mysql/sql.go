package mysql

// -----------------------------------------------------------------------------
// WRITE QUERIES
// -----------------------------------------------------------------------------

const insertRoomSQL = `
INSERT INTO room_types
  (name, capacity, description, price_low_season, price_high_season,
   amenities, suite_amenities, featured, image_name, display_order)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const deleteRoomSQL = `DELETE FROM room_types WHERE id = ?`

const insertRoomImageSQL = `
INSERT INTO room_images (room_id, image_path, caption, display_order)
VALUES (?, ?, ?, ?)
`

const deleteRoomImageSQL = `DELETE FROM room_images WHERE id = ? AND room_id = ?`

const insertAmenitySQL = `
INSERT INTO amenities (name, icon, category, display_order)
VALUES (?, ?, ?, ?)
`

const deleteAmenitySQL = `DELETE FROM amenities WHERE id = ?`

const insertGallerySQL = `
INSERT INTO gallery_images (image_path, category, display_order)
VALUES (?, ?, ?)
`

const deleteGallerySQL = `DELETE FROM gallery_images WHERE id = ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// display_order drives presentation sequence; id breaks ties deterministically.
const listRoomsSQL = `
SELECT
  id, name, capacity, description,
  price_low_season, price_high_season,
  amenities, suite_amenities,
  featured, image_name, display_order
FROM room_types
ORDER BY display_order, id
`

const listRoomImagesSQL = `
SELECT id, room_id, image_path, caption, display_order
FROM room_images
ORDER BY room_id, display_order, id
`

const listAmenitiesSQL = `
SELECT id, name, icon, category, display_order
FROM amenities
ORDER BY display_order, id
`

const listGallerySQL = `
SELECT id, image_path, category, display_order
FROM gallery_images
ORDER BY display_order, id
`
