package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kuhaiku/cabana-2.0/internal/config"
	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/models"

	_ "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type MySQLStore struct {
	db  *sql.DB
	log *logger.Logger
}

func NewMySQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*MySQLStore, error) {
	log.LogDatabase("CONNECT", "mysql", fmt.Sprintf("Connecting to MySQL at %s:%s", cfg.Host, cfg.Port))

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("DATABASE", "Failed to open MySQL connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Bounded pool; requests queue when it is exhausted.
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := db.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping MySQL: "+err.Error())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MySQLStore{
		db:  db,
		log: log,
	}

	if err := store.initTables(); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", "mysql", "MySQL connection established and tables initialized")
	return store, nil
}

func (s *MySQLStore) initTables() error {
	s.log.LogDatabase("MIGRATE", "mysql", "Creating tables if not exist")

	queries := []string{
		`CREATE TABLE IF NOT EXISTS orcamentos (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        nome VARCHAR(255) NOT NULL,
        whatsapp VARCHAR(50) NOT NULL,
        endereco VARCHAR(500),
        qtd_criancas INT NOT NULL DEFAULT 0,
        faixa_etaria VARCHAR(50),
        modelo_barraca VARCHAR(100),
        qtd_barracas INT NOT NULL DEFAULT 0,
        cores VARCHAR(255),
        tema VARCHAR(255),
        itens_padrao TEXT,
        itens_adicionais TEXT,
        data_festa VARCHAR(10) NOT NULL,
        horario VARCHAR(20),
        alimentacao TEXT,
        alergias VARCHAR(500),
        status VARCHAR(20) NOT NULL,
        token_avaliacao VARCHAR(64),
        valor_final DECIMAL(10,2) NOT NULL DEFAULT 0,
        data_pedido TIMESTAMP NOT NULL,
        INDEX idx_status (status),
        INDEX idx_token_avaliacao (token_avaliacao)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS avaliacoes (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        id_orcamento BIGINT NOT NULL,
        cliente_nome VARCHAR(255) NOT NULL,
        rating INT NOT NULL,
        comentario TEXT,
        fotos_urls TEXT,
        visivel BOOLEAN NOT NULL,
        data_avaliacao TIMESTAMP NOT NULL,
        INDEX idx_id_orcamento (id_orcamento),
        INDEX idx_visivel (visivel)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS tabela_precos (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        item_chave VARCHAR(100) NOT NULL,
        descricao VARCHAR(500) NOT NULL,
        categoria VARCHAR(100) NOT NULL,
        valor DECIMAL(10,2) NOT NULL,
        disponivel BOOLEAN NOT NULL,
        INDEX idx_disponivel (disponivel)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS financeiro (
        id BIGINT AUTO_INCREMENT PRIMARY KEY,
        tipo VARCHAR(20) NOT NULL,
        titulo VARCHAR(255) NOT NULL,
        valor DECIMAL(10,2) NOT NULL,
        descricao VARCHAR(500),
        data_lancamento TIMESTAMP NOT NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	s.log.LogDatabase("SUCCESS", "mysql", "All tables ready")
	return nil
}

// StartKeepalive pings the store periodically so idle connections are not
// evicted by the server. Failures are logged, never escalated.
func (s *MySQLStore) StartKeepalive(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.db.ExecContext(ctx, "SELECT 1"); err != nil {
					s.log.Error("DATABASE", "Keepalive ping failed: "+err.Error())
				}
			}
		}
	}()
}

func (s *MySQLStore) SaveOrder(ctx context.Context, order *models.Order) error {
	s.log.LogDatabase("INSERT", "orcamentos", fmt.Sprintf("Saving order for %s", order.CustomerName))

	standardItems, err := json.Marshal(order.StandardItems)
	if err != nil {
		return fmt.Errorf("failed to encode standard items: %w", err)
	}
	dietary, err := json.Marshal(order.Dietary)
	if err != nil {
		return fmt.Errorf("failed to encode dietary list: %w", err)
	}

	query := `
    INSERT INTO orcamentos (
        nome, whatsapp, endereco, qtd_criancas, faixa_etaria, modelo_barraca,
        qtd_barracas, cores, tema, itens_padrao, itens_adicionais, data_festa,
        horario, alimentacao, alergias, status, token_avaliacao, valor_final, data_pedido
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	result, err := s.db.ExecContext(ctx, query,
		order.CustomerName, order.Phone, order.Address, order.ChildCount, order.AgeRange,
		order.TentModel, order.TentCount, order.Colors, order.Theme, string(standardItems),
		order.ExtraItems, order.EventDate, order.EventTime, string(dietary), order.Allergies,
		order.Status, order.ReviewToken, order.FinalValue, order.CreatedAt,
	)
	if err != nil {
		s.log.Error("DATABASE", "Failed to save order: "+err.Error())
		return fmt.Errorf("failed to save order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read order id: %w", err)
	}
	order.ID = id

	s.log.LogDatabase("SUCCESS", "orcamentos", fmt.Sprintf("Order %d saved successfully", order.ID))
	return nil
}

const orderColumns = `
    id, nome, whatsapp, endereco, qtd_criancas, faixa_etaria, modelo_barraca,
    qtd_barracas, cores, tema, itens_padrao, itens_adicionais, data_festa,
    horario, alimentacao, alergias, status, token_avaliacao, valor_final, data_pedido
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	var standardItems, dietary string
	var token sql.NullString

	err := row.Scan(
		&order.ID, &order.CustomerName, &order.Phone, &order.Address, &order.ChildCount,
		&order.AgeRange, &order.TentModel, &order.TentCount, &order.Colors, &order.Theme,
		&standardItems, &order.ExtraItems, &order.EventDate, &order.EventTime, &dietary,
		&order.Allergies, &order.Status, &token, &order.FinalValue, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.ReviewToken = token.String
	if standardItems != "" {
		if err := json.Unmarshal([]byte(standardItems), &order.StandardItems); err != nil {
			return nil, fmt.Errorf("failed to decode standard items: %w", err)
		}
	}
	if dietary != "" {
		if err := json.Unmarshal([]byte(dietary), &order.Dietary); err != nil {
			return nil, fmt.Errorf("failed to decode dietary list: %w", err)
		}
	}
	return order, nil
}

func (s *MySQLStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	s.log.LogDatabase("SELECT", "orcamentos", fmt.Sprintf("Fetching order %d", id))

	query := `SELECT ` + orderColumns + ` FROM orcamentos WHERE id = ?`

	order, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.LogDatabase("NOT_FOUND", "orcamentos", fmt.Sprintf("Order %d not found", id))
			return nil, ErrNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get order %d: %s", id, err.Error()))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

func (s *MySQLStore) GetOrderByReviewToken(ctx context.Context, token string) (*models.Order, error) {
	s.log.LogDatabase("SELECT", "orcamentos", "Fetching order by review token")

	query := `SELECT ` + orderColumns + ` FROM orcamentos WHERE token_avaliacao = ?`

	order, err := scanOrder(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.LogDatabase("NOT_FOUND", "orcamentos", "No order matches the supplied token")
			return nil, ErrNotFound
		}
		s.log.Error("DATABASE", "Failed to get order by token: "+err.Error())
		return nil, fmt.Errorf("failed to get order by token: %w", err)
	}

	return order, nil
}

func (s *MySQLStore) ListOrders(ctx context.Context) ([]*models.Order, error) {
	s.log.LogDatabase("SELECT", "orcamentos", "Listing all orders")

	query := `SELECT ` + orderColumns + ` FROM orcamentos ORDER BY data_pedido DESC`
	return s.queryOrders(ctx, query)
}

func (s *MySQLStore) ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	s.log.LogDatabase("SELECT", "orcamentos", fmt.Sprintf("Listing orders with status %s", status))

	query := `SELECT ` + orderColumns + ` FROM orcamentos WHERE status = ? ORDER BY data_pedido DESC`
	return s.queryOrders(ctx, query, status)
}

func (s *MySQLStore) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Error("DATABASE", "Failed to list orders: "+err.Error())
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			s.log.Error("DATABASE", "Failed to scan order row: "+err.Error())
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		s.log.Error("DATABASE", "Row iteration error: "+err.Error())
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "orcamentos", fmt.Sprintf("Listed %d orders", len(orders)))
	return orders, nil
}

func (s *MySQLStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	s.log.LogDatabase("UPDATE", "orcamentos", fmt.Sprintf("Updating order %d", order.ID))

	query := `
    UPDATE orcamentos SET status = ?, token_avaliacao = ?, valor_final = ?
    WHERE id = ?
    `

	result, err := s.db.ExecContext(ctx, query, order.Status, order.ReviewToken, order.FinalValue, order.ID)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to update order %d: %s", order.ID, err.Error()))
		return fmt.Errorf("failed to update order: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		s.log.LogDatabase("NOT_FOUND", "orcamentos", fmt.Sprintf("Order %d not found for update", order.ID))
		return ErrNotFound
	}

	s.log.LogDatabase("SUCCESS", "orcamentos", fmt.Sprintf("Order %d updated successfully", order.ID))
	return nil
}

func (s *MySQLStore) DeleteOrder(ctx context.Context, id int64) error {
	s.log.LogDatabase("DELETE", "orcamentos", fmt.Sprintf("Deleting order %d", id))

	result, err := s.db.ExecContext(ctx, "DELETE FROM orcamentos WHERE id = ?", id)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to delete order %d: %s", id, err.Error()))
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	s.log.LogDatabase("SUCCESS", "orcamentos", fmt.Sprintf("Order %d deleted successfully", id))
	return nil
}

func (s *MySQLStore) SaveReview(ctx context.Context, review *models.Review) error {
	s.log.LogDatabase("INSERT", "avaliacoes", fmt.Sprintf("Saving review for order %d", review.OrderID))

	photos, err := json.Marshal(review.PhotoURLs)
	if err != nil {
		return fmt.Errorf("failed to encode photo urls: %w", err)
	}

	query := `
    INSERT INTO avaliacoes (id_orcamento, cliente_nome, rating, comentario, fotos_urls, visivel, data_avaliacao)
    VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	result, err := s.db.ExecContext(ctx, query,
		review.OrderID, review.CustomerName, review.Rating, review.Comment,
		string(photos), review.Visible, review.CreatedAt,
	)
	if err != nil {
		s.log.Error("DATABASE", "Failed to save review: "+err.Error())
		return fmt.Errorf("failed to save review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read review id: %w", err)
	}
	review.ID = id

	s.log.LogDatabase("SUCCESS", "avaliacoes", fmt.Sprintf("Review %d saved successfully", review.ID))
	return nil
}

func (s *MySQLStore) ListVisibleReviews(ctx context.Context) ([]*models.Review, error) {
	s.log.LogDatabase("SELECT", "avaliacoes", "Listing visible reviews")

	query := `
    SELECT id, id_orcamento, cliente_nome, rating, comentario, fotos_urls, visivel, data_avaliacao
    FROM avaliacoes WHERE visivel = TRUE ORDER BY data_avaliacao DESC
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.log.Error("DATABASE", "Failed to list reviews: "+err.Error())
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		var photos string
		err := rows.Scan(
			&review.ID, &review.OrderID, &review.CustomerName, &review.Rating,
			&review.Comment, &photos, &review.Visible, &review.CreatedAt,
		)
		if err != nil {
			s.log.Error("DATABASE", "Failed to scan review row: "+err.Error())
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if photos != "" {
			if err := json.Unmarshal([]byte(photos), &review.PhotoURLs); err != nil {
				return nil, fmt.Errorf("failed to decode photo urls: %w", err)
			}
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "avaliacoes", fmt.Sprintf("Listed %d reviews", len(reviews)))
	return reviews, nil
}

func (s *MySQLStore) SavePriceItem(ctx context.Context, item *models.PriceItem) error {
	s.log.LogDatabase("INSERT", "tabela_precos", fmt.Sprintf("Saving price item %s", item.Key))

	query := `
    INSERT INTO tabela_precos (item_chave, descricao, categoria, valor, disponivel)
    VALUES (?, ?, ?, ?, ?)
    `

	result, err := s.db.ExecContext(ctx, query, item.Key, item.Description, item.Category, item.UnitPrice, item.Available)
	if err != nil {
		s.log.Error("DATABASE", "Failed to save price item: "+err.Error())
		return fmt.Errorf("failed to save price item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read price item id: %w", err)
	}
	item.ID = id

	s.log.LogDatabase("SUCCESS", "tabela_precos", fmt.Sprintf("Price item %d saved successfully", item.ID))
	return nil
}

func (s *MySQLStore) ListPriceItems(ctx context.Context, onlyAvailable bool) ([]*models.PriceItem, error) {
	s.log.LogDatabase("SELECT", "tabela_precos", fmt.Sprintf("Listing price items (onlyAvailable: %t)", onlyAvailable))

	query := `SELECT id, item_chave, descricao, categoria, valor, disponivel FROM tabela_precos`
	if onlyAvailable {
		query += ` WHERE disponivel = TRUE`
	}
	query += ` ORDER BY categoria, descricao`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.log.Error("DATABASE", "Failed to list price items: "+err.Error())
		return nil, fmt.Errorf("failed to list price items: %w", err)
	}
	defer rows.Close()

	var items []*models.PriceItem
	for rows.Next() {
		item := &models.PriceItem{}
		err := rows.Scan(&item.ID, &item.Key, &item.Description, &item.Category, &item.UnitPrice, &item.Available)
		if err != nil {
			s.log.Error("DATABASE", "Failed to scan price item row: "+err.Error())
			return nil, fmt.Errorf("failed to scan price item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "tabela_precos", fmt.Sprintf("Listed %d price items", len(items)))
	return items, nil
}

func (s *MySQLStore) SetPriceItemAvailability(ctx context.Context, id int64, available bool) error {
	s.log.LogDatabase("UPDATE", "tabela_precos", fmt.Sprintf("Setting price item %d availability to %t", id, available))

	result, err := s.db.ExecContext(ctx, "UPDATE tabela_precos SET disponivel = ? WHERE id = ?", available, id)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to toggle price item %d: %s", id, err.Error()))
		return fmt.Errorf("failed to toggle price item: %w", err)
	}

	// RowsAffected is zero both for a missing row and for a no-op toggle, so a
	// separate existence check is needed to tell them apart.
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		var exists int
		if err := s.db.QueryRowContext(ctx, "SELECT 1 FROM tabela_precos WHERE id = ?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to check price item: %w", err)
		}
	}

	s.log.LogDatabase("SUCCESS", "tabela_precos", fmt.Sprintf("Price item %d availability set", id))
	return nil
}

func (s *MySQLStore) DeletePriceItem(ctx context.Context, id int64) error {
	s.log.LogDatabase("DELETE", "tabela_precos", fmt.Sprintf("Deleting price item %d", id))

	result, err := s.db.ExecContext(ctx, "DELETE FROM tabela_precos WHERE id = ?", id)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to delete price item %d: %s", id, err.Error()))
		return fmt.Errorf("failed to delete price item: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	s.log.LogDatabase("SUCCESS", "tabela_precos", fmt.Sprintf("Price item %d deleted successfully", id))
	return nil
}

func (s *MySQLStore) SaveLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	s.log.LogDatabase("INSERT", "financeiro", fmt.Sprintf("Saving ledger entry %s", entry.Title))

	query := `
    INSERT INTO financeiro (tipo, titulo, valor, descricao, data_lancamento)
    VALUES (?, ?, ?, ?, ?)
    `

	result, err := s.db.ExecContext(ctx, query, entry.Type, entry.Title, entry.Value, entry.Description, entry.PostedAt)
	if err != nil {
		s.log.Error("DATABASE", "Failed to save ledger entry: "+err.Error())
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read ledger entry id: %w", err)
	}
	entry.ID = id

	s.log.LogDatabase("SUCCESS", "financeiro", fmt.Sprintf("Ledger entry %d saved successfully", entry.ID))
	return nil
}

func (s *MySQLStore) ListLedgerEntries(ctx context.Context) ([]*models.LedgerEntry, error) {
	s.log.LogDatabase("SELECT", "financeiro", "Listing ledger entries")

	query := `
    SELECT id, tipo, titulo, valor, COALESCE(descricao, ''), data_lancamento
    FROM financeiro ORDER BY data_lancamento DESC
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.log.Error("DATABASE", "Failed to list ledger entries: "+err.Error())
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		entry := &models.LedgerEntry{}
		err := rows.Scan(&entry.ID, &entry.Type, &entry.Title, &entry.Value, &entry.Description, &entry.PostedAt)
		if err != nil {
			s.log.Error("DATABASE", "Failed to scan ledger entry row: "+err.Error())
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "financeiro", fmt.Sprintf("Listed %d ledger entries", len(entries)))
	return entries, nil
}

func (s *MySQLStore) HealthCheck() error {
	return s.db.Ping()
}

func (s *MySQLStore) Close() error {
	s.log.LogDatabase("CLOSE", "mysql", "Closing MySQL connection")
	return s.db.Close()
}
