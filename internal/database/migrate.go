package database

import (
	"context"
	"database/sql"
	"fmt"
)

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    email         VARCHAR(255) NOT NULL UNIQUE,
    name          VARCHAR(255) NOT NULL DEFAULT '',
    password_hash VARCHAR(255) NOT NULL,
    role          VARCHAR(32)  NOT NULL DEFAULT 'CUSTOMER',
    is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createRefreshTokensSQL = `
CREATE TABLE IF NOT EXISTS refresh_tokens (
    id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    user_id    BIGINT UNSIGNED NOT NULL,
    token_hash CHAR(64)  NOT NULL UNIQUE,
    expires_at DATETIME  NOT NULL,
    revoked_at DATETIME  NULL,
    created_at DATETIME  NOT NULL DEFAULT CURRENT_TIMESTAMP,
    KEY idx_refresh_user (user_id),
    CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createPurchasesSQL = `
CREATE TABLE IF NOT EXISTS purchases (
    id                CHAR(36)        NOT NULL PRIMARY KEY,
    user_id           BIGINT UNSIGNED NOT NULL,
    total_cents       BIGINT          NOT NULL,
    customer_name     VARCHAR(255)    NOT NULL,
    customer_email    VARCHAR(255)    NOT NULL,
    customer_phone    VARCHAR(64)     NOT NULL DEFAULT '',
    customer_document VARCHAR(64)     NOT NULL DEFAULT '',
    card_masked       VARCHAR(32)     NOT NULL DEFAULT '',
    card_name         VARCHAR(255)    NOT NULL DEFAULT '',
    card_expiry       VARCHAR(16)     NOT NULL DEFAULT '',
    created_at        DATETIME        NOT NULL,
    KEY idx_purchases_user (user_id, created_at),
    CONSTRAINT fk_purchases_user FOREIGN KEY (user_id) REFERENCES users(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createPurchaseItemsSQL = `
CREATE TABLE IF NOT EXISTS purchase_items (
    purchase_id    CHAR(36)     NOT NULL,
    line_no        INT          NOT NULL,
    event_id       BIGINT       NOT NULL,
    event_title    VARCHAR(255) NOT NULL,
    performance_id BIGINT       NOT NULL,
    ticket_id      BIGINT       NOT NULL,
    ticket_name    VARCHAR(255) NOT NULL,
    price_cents    BIGINT       NOT NULL,
    quantity       INT          NOT NULL,
    venue          VARCHAR(255) NOT NULL DEFAULT '',
    date_label     VARCHAR(64)  NOT NULL DEFAULT '',
    seats          TEXT         NOT NULL,
    PRIMARY KEY (purchase_id, line_no),
    CONSTRAINT fk_items_purchase FOREIGN KEY (purchase_id) REFERENCES purchases(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// Migrate creates the storefront tables if they do not exist.  Order
// matters because of the foreign keys.
func Migrate(ctx context.Context, db *sql.DB) error {
	steps := []struct{ name, sql string }{
		{"users", createUsersSQL},
		{"refresh_tokens", createRefreshTokensSQL},
		{"purchases", createPurchasesSQL},
		{"purchase_items", createPurchaseItemsSQL},
	}
	for _, s := range steps {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
	}
	return nil
}
