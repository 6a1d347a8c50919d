package store

// Schema v1 - Initial database schema.
// Table shapes match the databases written by earlier releases so an
// existing playlists.db keeps working unchanged.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- User-defined playlist categories. Ids are assigned by the application
-- as max(id)+1 rather than AUTOINCREMENT, so gaps from deletions are
-- never reused differently than older databases expect.
CREATE TABLE IF NOT EXISTS categories (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);

-- Folder -> category assignments. One category per folder path.
CREATE TABLE IF NOT EXISTS folders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  path TEXT NOT NULL UNIQUE,
  category_id INTEGER REFERENCES categories(id)
);

CREATE INDEX IF NOT EXISTS idx_folders_category ON folders(category_id);

-- Flattened snapshot of the media server's item tree. parent_id is not
-- a foreign key: children may arrive before (or without) their parent.
CREATE TABLE IF NOT EXISTS catalog_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  item_id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  path TEXT,
  type TEXT NOT NULL,
  parent_id TEXT,
  scan_date DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_catalog_items_parent ON catalog_items(parent_id);
CREATE INDEX IF NOT EXISTS idx_catalog_items_type ON catalog_items(type);
`

// Schema v2 - optional owning-user tag on folder assignments
const schemaV2 = `
ALTER TABLE folders ADD COLUMN user_name TEXT;
`
