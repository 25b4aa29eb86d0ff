package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	apperrors "production-tracking/pkg/errors"
	"production-tracking/pkg/types"
)

const (
	ordersTable     = "orders"
	stagesTable     = "stages"
	orderFilesTable = "order_files"
)

const orderFields = `id, order_number, client_name, description, quantity, market_type,
	material_cost, processing_time_per_unit, minute_rate_domestic, minute_rate_foreign,
	processing_types, revision, created_by, created_at, updated_at`

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	GetAllOrders(ctx context.Context) ([]entities.Order, error)
	FindOrder(ctx context.Context, id string) (*entities.Order, error)
	CreateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error
	UpdateOrderFields(ctx context.Context, tx pgx.Tx, id string, upd dto.UpdateOrderDTO) error
	BumpRevision(ctx context.Context, tx pgx.Tx, id string, expected null.Int64) error
	DeleteOrder(ctx context.Context, id string) error
}

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

type dbOrder struct {
	ID                    string
	OrderNumber           string
	ClientName            string
	Description           string
	Quantity              int
	MarketType            string
	MaterialCost          float64
	ProcessingTimePerUnit float64
	MinuteRateDomestic    float64
	MinuteRateForeign     float64
	ProcessingTypes       []string
	Revision              int64
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (o dbOrder) ToEntity() entities.Order {
	processingTypes := make([]entities.ProcessingType, 0, len(o.ProcessingTypes))
	for _, pt := range o.ProcessingTypes {
		processingTypes = append(processingTypes, entities.ProcessingType(pt))
	}

	return entities.Order{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		ClientName:            o.ClientName,
		Description:           o.Description,
		Quantity:              o.Quantity,
		MarketType:            entities.MarketType(o.MarketType),
		MaterialCost:          o.MaterialCost,
		ProcessingTimePerUnit: o.ProcessingTimePerUnit,
		MinuteRateDomestic:    o.MinuteRateDomestic,
		MinuteRateForeign:     o.MinuteRateForeign,
		ProcessingTypes:       processingTypes,
		Revision:              o.Revision,
		CreatedBy:             o.CreatedBy,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

func scanOrder(row pgx.Row) (entities.Order, error) {
	var o dbOrder
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.ClientName, &o.Description, &o.Quantity, &o.MarketType,
		&o.MaterialCost, &o.ProcessingTimePerUnit, &o.MinuteRateDomestic, &o.MinuteRateForeign,
		&o.ProcessingTypes, &o.Revision, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return entities.Order{}, err
	}
	return o.ToEntity(), nil
}

// allow-list полей, по которым можно фильтровать и сортировать снаружи
var (
	orderFilterableFields = map[string]bool{"market_type": true, "created_by": true, "order_number": true}
	orderSortableFields   = map[string]bool{"created_at": true, "order_number": true, "client_name": true, "quantity": true}
)

func (r *OrderRepository) buildOrdersQuery(filter types.Filter) (sq.SelectBuilder, sq.SelectBuilder) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	listQ := psql.Select(strings.Split(orderFields, ",")...).From(ordersTable)
	countQ := psql.Select("COUNT(*)").From(ordersTable)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		cond := sq.Or{
			sq.ILike{"order_number": pattern},
			sq.ILike{"client_name": pattern},
		}
		listQ = listQ.Where(cond)
		countQ = countQ.Where(cond)
	}

	for field, value := range filter.Filter {
		if !orderFilterableFields[field] {
			continue
		}
		listQ = listQ.Where(sq.Eq{field: value})
		countQ = countQ.Where(sq.Eq{field: value})
	}

	ordered := false
	for field, dir := range filter.Sort {
		if !orderSortableFields[field] {
			continue
		}
		if strings.ToLower(dir) != "asc" {
			dir = "desc"
		}
		listQ = listQ.OrderBy(field + " " + dir)
		ordered = true
	}
	if !ordered {
		listQ = listQ.OrderBy("created_at DESC")
	}

	if filter.Limit > 0 {
		listQ = listQ.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		listQ = listQ.Offset(uint64(filter.Offset))
	}

	return listQ, countQ
}

func (r *OrderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	listQ, countQ := r.buildOrdersQuery(filter)

	query, args, err := listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("не удалось собрать запрос списка заказов: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("не удалось получить список заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("не удалось прочитать заказ: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachStages(ctx, orders); err != nil {
		return nil, 0, err
	}

	var total uint64
	if filter.WithPagination {
		query, args, err := countQ.ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("не удалось собрать запрос подсчёта заказов: %w", err)
		}
		if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("не удалось посчитать заказы: %w", err)
		}
	} else {
		total = uint64(len(orders))
	}

	return orders, total, nil
}

// GetAllOrders возвращает все заказы с этапами, без файлов и без пагинации.
// Нужен дашборду и таймлайну, которые агрегируют по всему набору.
func (r *OrderRepository) GetAllOrders(ctx context.Context) ([]entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, orderFields, ordersTable)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заказы: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать заказ: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachStages(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) FindOrder(ctx context.Context, id string) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, orderFields, ordersTable)

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("не удалось получить заказ: %w", err)
	}

	orders := []entities.Order{order}
	if err := r.attachStages(ctx, orders); err != nil {
		return nil, err
	}
	if err := r.attachFiles(ctx, orders); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, order_number, client_name, description, quantity, market_type,
			material_cost, processing_time_per_unit, minute_rate_domestic, minute_rate_foreign,
			processing_types, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING revision, created_at, updated_at`, ordersTable)

	processingTypes := make([]string, 0, len(order.ProcessingTypes))
	for _, pt := range order.ProcessingTypes {
		processingTypes = append(processingTypes, string(pt))
	}

	err := tx.QueryRow(ctx, query,
		order.ID, order.OrderNumber, order.ClientName, order.Description, order.Quantity, order.MarketType,
		order.MaterialCost, order.ProcessingTimePerUnit, order.MinuteRateDomestic, order.MinuteRateForeign,
		processingTypes, order.CreatedBy,
	).Scan(&order.Revision, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("не удалось создать заказ: %w", err)
	}

	for i := range order.Stages {
		if err := r.insertStage(ctx, tx, &order.Stages[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *OrderRepository) insertStage(ctx context.Context, tx pgx.Tx, stage *entities.Stage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, order_id, name, stage_order, status, percentage,
			start_date, end_date, completed_units, responsible_person, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, stagesTable)

	_, err := tx.Exec(ctx, query,
		stage.ID, stage.OrderID, stage.Name, stage.StageOrder, stage.Status, stage.Percentage,
		stage.StartDate, stage.EndDate, stage.CompletedUnits, stage.ResponsiblePerson, stage.Notes,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать этап «%s»: %w", stage.Name, err)
	}
	return nil
}

// UpdateOrderFields обновляет только присланные поля и инкрементирует ревизию.
// Если прислана ожидаемая ревизия и она не совпала — apperrors.ErrStaleRevision.
func (r *OrderRepository) UpdateOrderFields(ctx context.Context, tx pgx.Tx, id string, upd dto.UpdateOrderDTO) error {
	setClauses := []string{}
	args := []interface{}{}
	argID := 1

	addSet := func(field string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, argID))
		args = append(args, value)
		argID++
	}

	if upd.ClientName != nil {
		addSet("client_name", *upd.ClientName)
	}
	if upd.Description != nil {
		addSet("description", *upd.Description)
	}
	if upd.Quantity != nil {
		addSet("quantity", *upd.Quantity)
	}
	if upd.MarketType != nil {
		addSet("market_type", *upd.MarketType)
	}
	if upd.MaterialCost != nil {
		addSet("material_cost", *upd.MaterialCost)
	}
	if upd.ProcessingTimePerUnit != nil {
		addSet("processing_time_per_unit", *upd.ProcessingTimePerUnit)
	}
	if upd.ProcessingTypes != nil {
		addSet("processing_types", upd.ProcessingTypes)
	}
	if upd.MinuteRateDomestic != nil {
		addSet("minute_rate_domestic", *upd.MinuteRateDomestic)
	}
	if upd.MinuteRateForeign != nil {
		addSet("minute_rate_foreign", *upd.MinuteRateForeign)
	}

	setClauses = append(setClauses, "revision = revision + 1", "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		ordersTable, strings.Join(setClauses, ", "), argID)
	args = append(args, id)
	argID++

	if upd.Revision.Valid {
		query += fmt.Sprintf(" AND revision = $%d", argID)
		args = append(args, upd.Revision.Int64)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("не удалось обновить заказ: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, tx, id)
	}

	return nil
}

// BumpRevision инкрементирует ревизию заказа при изменении его этапов.
func (r *OrderRepository) BumpRevision(ctx context.Context, tx pgx.Tx, id string, expected null.Int64) error {
	query := fmt.Sprintf("UPDATE %s SET revision = revision + 1, updated_at = NOW() WHERE id = $1", ordersTable)
	args := []interface{}{id}

	if expected.Valid {
		query += " AND revision = $2"
		args = append(args, expected.Int64)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("не удалось обновить ревизию заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, tx, id)
	}

	return nil
}

// classifyMiss разбирает, почему UPDATE не задел ни одной строки:
// заказа нет вовсе или прислана устаревшая ревизия.
func (r *OrderRepository) classifyMiss(ctx context.Context, tx pgx.Tx, id string) error {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", ordersTable)
	if err := tx.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("не удалось проверить существование заказа: %w", err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrStaleRevision
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", ordersTable)

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("не удалось удалить заказ: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// attachStages подгружает этапы для набора заказов одним запросом.
func (r *OrderRepository) attachStages(ctx context.Context, orders []entities.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	index := make(map[string]*entities.Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
		orders[i].Stages = make([]entities.Stage, 0, 8)
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, name, stage_order, status, percentage,
			start_date, end_date, completed_units, responsible_person, notes
		FROM %s WHERE order_id = ANY($1::uuid[])
		ORDER BY stage_order`, stagesTable)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("не удалось получить этапы заказов: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return fmt.Errorf("не удалось прочитать этап: %w", err)
		}
		if order, ok := index[stage.OrderID]; ok {
			order.Stages = append(order.Stages, stage)
		}
	}

	return rows.Err()
}

func (r *OrderRepository) attachFiles(ctx context.Context, orders []entities.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	index := make(map[string]*entities.Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
		orders[i].Files = make([]entities.OrderFile, 0)
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, filename, original_filename, file_path, uploaded_at
		FROM %s WHERE order_id = ANY($1::uuid[])
		ORDER BY uploaded_at`, orderFilesTable)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("не удалось получить файлы заказов: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f entities.OrderFile
		if err := rows.Scan(&f.ID, &f.OrderID, &f.Filename, &f.OriginalFilename, &f.FilePath, &f.UploadedAt); err != nil {
			return fmt.Errorf("не удалось прочитать файл заказа: %w", err)
		}
		if order, ok := index[f.OrderID]; ok {
			order.Files = append(order.Files, f)
		}
	}

	return rows.Err()
}

type dbStage struct {
	ID                string
	OrderID           string
	Name              string
	StageOrder        int
	Status            string
	Percentage        int
	StartDate         sql.NullTime
	EndDate           sql.NullTime
	CompletedUnits    sql.NullInt64
	ResponsiblePerson sql.NullString
	Notes             sql.NullString
}

func scanStage(row pgx.Row) (entities.Stage, error) {
	var s dbStage
	err := row.Scan(
		&s.ID, &s.OrderID, &s.Name, &s.StageOrder, &s.Status, &s.Percentage,
		&s.StartDate, &s.EndDate, &s.CompletedUnits, &s.ResponsiblePerson, &s.Notes,
	)
	if err != nil {
		return entities.Stage{}, err
	}

	stage := entities.Stage{
		ID:         s.ID,
		OrderID:    s.OrderID,
		Name:       s.Name,
		StageOrder: s.StageOrder,
		Status:     entities.StageStatus(s.Status),
		Percentage: s.Percentage,
	}
	if s.StartDate.Valid {
		t := s.StartDate.Time
		stage.StartDate = &t
	}
	if s.EndDate.Valid {
		t := s.EndDate.Time
		stage.EndDate = &t
	}
	if s.CompletedUnits.Valid {
		u := int(s.CompletedUnits.Int64)
		stage.CompletedUnits = &u
	}
	if s.ResponsiblePerson.Valid {
		v := s.ResponsiblePerson.String
		stage.ResponsiblePerson = &v
	}
	if s.Notes.Valid {
		v := s.Notes.String
		stage.Notes = &v
	}

	return stage, nil
}
