package search

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yash-kalathiya/food-spotz/internal/dishes"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Save a search: record + restaurants + ranked dishes
// --------------------------------------------------
func (r *PostgresRepository) SaveSearch(
	ctx context.Context,
	record *SearchRecord,
	restaurants []RestaurantResult,
) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	recordSQL := `
		INSERT INTO search_records (
			search_id,
			mealtime,
			cuisine,
			location,
			latitude,
			longitude,
			source,
			restaurant_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	if err := tx.QueryRow(
		ctx,
		recordSQL,
		record.SearchID,
		record.MealTime,
		record.Cuisine,
		record.Location,
		record.Latitude,
		record.Longitude,
		record.Source,
		len(restaurants),
	).Scan(&record.CreatedAt); err != nil {
		return err
	}
	record.RestaurantCount = len(restaurants)

	restaurantSQL := `
		INSERT INTO restaurants (
			search_id,
			name,
			address,
			rating,
			total_reviews,
			price_level,
			phone,
			website,
			hours,
			cuisine_type,
			mealtime,
			source_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	dishSQL := `
		INSERT INTO dishes (
			restaurant_id,
			name,
			mention_count,
			sentiment_score,
			sample_review
		)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, res := range restaurants {
		var restaurantID int
		if err := tx.QueryRow(
			ctx,
			restaurantSQL,
			record.SearchID,
			res.Name,
			res.Address,
			res.Rating,
			res.TotalReviews,
			res.PriceLevel,
			res.Phone,
			res.Website,
			res.Hours,
			res.CuisineType,
			res.MealTime,
			res.SourceURL,
		).Scan(&restaurantID); err != nil {
			return err
		}

		for _, dish := range res.TopDishes {
			if _, err := tx.Exec(
				ctx,
				dishSQL,
				restaurantID,
				dish.Name,
				dish.MentionCount,
				dish.AverageSentiment,
				dish.Sample,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Load a stored search with its restaurants and dishes
// --------------------------------------------------
func (r *PostgresRepository) GetSearch(
	ctx context.Context,
	searchID string,
) (*SearchRecord, []RestaurantResult, error) {
	recordSQL := `
		SELECT
			search_id,
			mealtime,
			cuisine,
			location,
			latitude,
			longitude,
			source,
			restaurant_count,
			created_at
		FROM search_records
		WHERE search_id = $1
	`

	var record SearchRecord
	err := r.db.QueryRow(ctx, recordSQL, searchID).Scan(
		&record.SearchID,
		&record.MealTime,
		&record.Cuisine,
		&record.Location,
		&record.Latitude,
		&record.Longitude,
		&record.Source,
		&record.RestaurantCount,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	restaurantSQL := `
		SELECT
			id,
			name,
			address,
			COALESCE(rating, 0),
			COALESCE(total_reviews, 0),
			COALESCE(price_level, ''),
			COALESCE(phone, ''),
			COALESCE(website, ''),
			COALESCE(hours, ''),
			COALESCE(cuisine_type, ''),
			COALESCE(mealtime, ''),
			COALESCE(source_url, '')
		FROM restaurants
		WHERE search_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, restaurantSQL, searchID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var restaurants []RestaurantResult
	var ids []int

	for rows.Next() {
		var id int
		var res RestaurantResult
		if err := rows.Scan(
			&id,
			&res.Name,
			&res.Address,
			&res.Rating,
			&res.TotalReviews,
			&res.PriceLevel,
			&res.Phone,
			&res.Website,
			&res.Hours,
			&res.CuisineType,
			&res.MealTime,
			&res.SourceURL,
		); err != nil {
			return nil, nil, err
		}
		restaurants = append(restaurants, res)
		ids = append(ids, id)
	}
	rows.Close()

	dishSQL := `
		SELECT
			name,
			mention_count,
			sentiment_score,
			COALESCE(sample_review, '')
		FROM dishes
		WHERE restaurant_id = $1
		ORDER BY id
	`

	for i, restaurantID := range ids {
		dishRows, err := r.db.Query(ctx, dishSQL, restaurantID)
		if err != nil {
			return nil, nil, err
		}

		for dishRows.Next() {
			var dish dishes.RankedDish
			if err := dishRows.Scan(
				&dish.Name,
				&dish.MentionCount,
				&dish.AverageSentiment,
				&dish.Sample,
			); err != nil {
				dishRows.Close()
				return nil, nil, err
			}
			restaurants[i].TopDishes = append(restaurants[i].TopDishes, dish)
		}
		dishRows.Close()
	}

	return &record, restaurants, nil
}

// --------------------------------------------------
// Recent search history
// --------------------------------------------------
func (r *PostgresRepository) History(ctx context.Context, limit int) ([]HistoryItem, error) {
	query := `
		SELECT
			search_id,
			mealtime,
			cuisine,
			location,
			restaurant_count,
			created_at
		FROM search_records
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(
			&item.SearchID,
			&item.MealTime,
			&item.Cuisine,
			&item.Location,
			&item.RestaurantCount,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// --------------------------------------------------
// Query cache
// --------------------------------------------------
func (r *PostgresRepository) GetCachedSearchID(ctx context.Context, cacheKey string) (string, error) {
	query := `
		SELECT search_id
		FROM cache_entries
		WHERE cache_key = $1
		  AND expires_at > NOW()
	`

	var searchID string
	err := r.db.QueryRow(ctx, query, cacheKey).Scan(&searchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return searchID, nil
}

func (r *PostgresRepository) SetCache(ctx context.Context, cacheKey, searchID string, expiresAt time.Time) error {
	query := `
		INSERT INTO cache_entries (cache_key, search_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key)
		DO UPDATE SET search_id = $2, expires_at = $3, created_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(ctx, query, cacheKey, searchID, expiresAt)
	return err
}

func (r *PostgresRepository) DeleteExpiredCache(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM cache_entries WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
