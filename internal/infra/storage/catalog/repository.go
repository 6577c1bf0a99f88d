package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/VH-BookingService/internal/domain"
	"github.com/m04kA/VH-BookingService/pkg/dbmetrics"
	"github.com/m04kA/VH-BookingService/pkg/psqlbuilder"
)

// Repository read-only доступ к справочным сущностям: пользователи, залы,
// пространства, сцены, пакеты декора и меню, каталог мебели.
// CRUD этих сущностей - зона ответственности внешних админ-флоу.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр справочного репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUser получает пользователя по ID
func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"username",
		"email",
		"phone",
		"avatar",
		"memberships_id",
		"role",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUser - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	var avatar sql.NullString
	var membershipID sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Phone,
		&avatar,
		&membershipID,
		&user.Role,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUser - scan user: %v", ErrScanRow, err)
	}

	if avatar.Valid {
		user.Avatar = &avatar.String
	}
	if membershipID.Valid {
		user.MembershipID = &membershipID.Int64
	}

	return &user, nil
}

// GetVenue получает зал вместе с деталями (LEFT JOIN venue_details)
func (r *Repository) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"v.id",
		"v.name",
		"v.slug",
		"d.id",
		"d.venue_id",
		"d.address",
		"d.description",
		"d.max_guests",
	).
		From("venues v").
		LeftJoin("venue_details d ON d.venue_id = v.id").
		Where(squirrel.Eq{"v.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - build select query: %v", ErrBuildQuery, err)
	}

	var venue domain.Venue
	var detailID, detailVenueID sql.NullInt64
	var address, description sql.NullString
	var maxGuests sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Slug,
		&detailID,
		&detailVenueID,
		&address,
		&description,
		&maxGuests,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - scan venue: %v", ErrScanRow, err)
	}

	if detailID.Valid {
		venue.Detail = &domain.VenueDetail{
			ID:          detailID.Int64,
			VenueID:     detailVenueID.Int64,
			Address:     address.String,
			Description: description.String,
			MaxGuests:   int(maxGuests.Int64),
		}
	}

	return &venue, nil
}

// GetSpace получает пространство по ID
func (r *Repository) GetSpace(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "venue_id", "name").
		From("spaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpace - build select query: %v", ErrBuildQuery, err)
	}

	var space domain.Space
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&space.ID,
		&space.VenueID,
		&space.Name,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpace - scan space: %v", ErrScanRow, err)
	}

	return &space, nil
}

// GetStage получает сцену по ID
func (r *Repository) GetStage(ctx context.Context, id int64) (*domain.Stage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "venue_id", "name", "capacity").
		From("stages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStage - build select query: %v", ErrBuildQuery, err)
	}

	var stage domain.Stage
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stage.ID,
		&stage.VenueID,
		&stage.Name,
		&stage.Capacity,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStage - scan stage: %v", ErrScanRow, err)
	}

	return &stage, nil
}

// GetDecor получает пакет декора по ID
func (r *Repository) GetDecor(ctx context.Context, id int64) (*domain.DecorPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price").
		From("decor_packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDecor - build select query: %v", ErrBuildQuery, err)
	}

	var decor domain.DecorPackage
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&decor.ID,
		&decor.Name,
		&decor.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDecorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDecor - scan decor package: %v", ErrScanRow, err)
	}

	return &decor, nil
}

// GetMenu получает пакет меню по ID
func (r *Repository) GetMenu(ctx context.Context, id int64) (*domain.MenuPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price").
		From("menu_packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMenu - build select query: %v", ErrBuildQuery, err)
	}

	var menu domain.MenuPackage
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&menu.ID,
		&menu.Name,
		&menu.Price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenu - scan menu package: %v", ErrScanRow, err)
	}

	return &menu, nil
}

// GetFurniture получает позицию каталога мебели по ID
func (r *Repository) GetFurniture(ctx context.Context, id int64) (*domain.Furniture, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"description",
		"short_description",
		"images",
		"type",
	).
		From("furnitures").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFurniture - build select query: %v", ErrBuildQuery, err)
	}

	var furniture domain.Furniture
	var images []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&furniture.ID,
		&furniture.Name,
		&furniture.Price,
		&furniture.Description,
		&furniture.ShortDescription,
		&images,
		&furniture.Type,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFurnitureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFurniture - scan furniture: %v", ErrScanRow, err)
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &furniture.Images); err != nil {
			return nil, fmt.Errorf("%w: GetFurniture - unmarshal images: %v", ErrScanRow, err)
		}
	}

	return &furniture, nil
}
