package database

// Schema mirrors the shop's relational model: the catalog carries live
// stock, purchases form an append-only ledger priced at purchase time, and
// restocks record every stock increase with the admin who made it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
	    id CHAR(36) PRIMARY KEY,
	    name VARCHAR(100) NOT NULL,
	    email VARCHAR(150) NOT NULL,
	    password_hash TEXT NOT NULL,
	    role ENUM('user', 'admin') NOT NULL DEFAULT 'user',
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    UNIQUE KEY uk_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS sweets (
	    id CHAR(36) PRIMARY KEY,
	    name VARCHAR(100) NOT NULL,
	    category VARCHAR(50) NOT NULL,
	    price DECIMAL(10,2) NOT NULL,
	    quantity INT NOT NULL DEFAULT 0,
	    description TEXT,
	    image_url VARCHAR(512),
	    created_by CHAR(36),
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	    UNIQUE KEY uk_name (name),
	    INDEX idx_category (category),
	    FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS purchases (
	    id CHAR(36) PRIMARY KEY,
	    user_id CHAR(36) NOT NULL,
	    sweet_id CHAR(36) NOT NULL,
	    quantity INT NOT NULL,
	    price_at_purchase DECIMAL(10,2) NOT NULL,
	    purchased_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    INDEX idx_user_id (user_id),
	    INDEX idx_purchased_at (purchased_at),
	    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	    FOREIGN KEY (sweet_id) REFERENCES sweets(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restocks (
	    id CHAR(36) PRIMARY KEY,
	    admin_id CHAR(36),
	    sweet_id CHAR(36) NOT NULL,
	    quantity_added INT NOT NULL,
	    restocked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    INDEX idx_sweet_id (sweet_id),
	    FOREIGN KEY (admin_id) REFERENCES users(id) ON DELETE SET NULL,
	    FOREIGN KEY (sweet_id) REFERENCES sweets(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS carts (
	    user_id CHAR(36) PRIMARY KEY,
	    items JSON NOT NULL,
	    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// SetupSchema creates all application tables
func (db *DB) SetupSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropSchema removes all application tables
func (db *DB) DropSchema() error {
	queries := []string{
		"DROP TABLE IF EXISTS carts",
		"DROP TABLE IF EXISTS restocks",
		"DROP TABLE IF EXISTS purchases",
		"DROP TABLE IF EXISTS sweets",
		"DROP TABLE IF EXISTS users",
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
