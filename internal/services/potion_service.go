package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/potionworks/potion-api-be/internal/models"
)

// PotionServiceProvider defines the interface for potion services.
type PotionServiceProvider interface {
	GetAllPotions() ([]models.Potion, error)
	GetPotionByID(id string) (models.Potion, error)
	GetPotionNames() ([]string, error)
	GetPotionsByVendor(vendorID string) ([]models.Potion, error)
	GetPotionsByPriceRange(min, max string) ([]models.Potion, error)
	CreatePotion(potion models.Potion) (models.Potion, error)
	UpdatePotion(id string, update models.PotionUpdate) (models.Potion, error)
	DeletePotion(id string) error
	CountDistinctCategories() (int, error)
	AverageScoreByVendor() ([]models.VendorScore, error)
	AverageScoreByCategory() ([]models.CategoryScore, error)
	StrengthFlavorRatios() ([]models.PotionRatio, error)
	AggregateSearch(groupBy, metric, field string) ([]map[string]any, error)
}

// PotionService provides business logic for the potion catalog.
type PotionService struct {
	db *sql.DB
}

// NewPotionService creates a new PotionService.
func NewPotionService(db *sql.DB) *PotionService {
	return &PotionService{db: db}
}

const potionColumns = "id, name, price, vendor, category, strength, flavor, score, created_at"

func scanPotion(row interface{ Scan(...any) error }) (models.Potion, error) {
	var p models.Potion
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Vendor, &p.Category, &p.Strength, &p.Flavor, &p.Score, &p.CreatedAt)
	return p, err
}

func (s *PotionService) queryPotions(query string, args ...any) ([]models.Potion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	potions := []models.Potion{}
	for rows.Next() {
		p, err := scanPotion(rows)
		if err != nil {
			return nil, err
		}
		potions = append(potions, p)
	}
	return potions, rows.Err()
}

// GetAllPotions retrieves every potion, unfiltered.
func (s *PotionService) GetAllPotions() ([]models.Potion, error) {
	return s.queryPotions("SELECT " + potionColumns + " FROM potions ORDER BY rowid")
}

// GetPotionByID retrieves a single potion by its ID.
func (s *PotionService) GetPotionByID(id string) (models.Potion, error) {
	row := s.db.QueryRow("SELECT "+potionColumns+" FROM potions WHERE id = ?", id)
	p, err := scanPotion(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Potion{}, models.ErrNotFound
		}
		return models.Potion{}, err
	}
	return p, nil
}

// GetPotionNames retrieves only the name of every potion.
func (s *PotionService) GetPotionNames() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM potions ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetPotionsByVendor retrieves every potion sold by a given vendor.
func (s *PotionService) GetPotionsByVendor(vendorID string) ([]models.Potion, error) {
	return s.queryPotions("SELECT "+potionColumns+" FROM potions WHERE vendor = ? ORDER BY rowid", vendorID)
}

// GetPotionsByPriceRange retrieves potions priced within [min, max]. The
// bounds are passed through as-is; the store's comparison rules decide
// what a non-numeric bound matches.
func (s *PotionService) GetPotionsByPriceRange(min, max string) ([]models.Potion, error) {
	return s.queryPotions("SELECT "+potionColumns+" FROM potions WHERE price >= ? AND price <= ? ORDER BY rowid", min, max)
}

// CreatePotion persists a new potion and returns it with its generated ID.
func (s *PotionService) CreatePotion(potion models.Potion) (models.Potion, error) {
	potion.ID = uuid.New().String()

	_, err := s.db.Exec(
		"INSERT INTO potions(id, name, price, vendor, category, strength, flavor, score) VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
		potion.ID, potion.Name, potion.Price, potion.Vendor, potion.Category, potion.Strength, potion.Flavor, potion.Score)
	if err != nil {
		return models.Potion{}, err
	}

	return s.GetPotionByID(potion.ID)
}

// UpdatePotion merges the non-nil fields of update into the stored record
// and returns the result.
func (s *PotionService) UpdatePotion(id string, update models.PotionUpdate) (models.Potion, error) {
	existing, err := s.GetPotionByID(id)
	if err != nil {
		return models.Potion{}, err
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Price != nil {
		existing.Price = *update.Price
	}
	if update.Vendor != nil {
		existing.Vendor = *update.Vendor
	}
	if update.Category != nil {
		existing.Category = *update.Category
	}
	if update.Strength != nil {
		existing.Strength = *update.Strength
	}
	if update.Flavor != nil {
		existing.Flavor = *update.Flavor
	}
	if update.Score != nil {
		existing.Score = *update.Score
	}

	_, err = s.db.Exec(
		"UPDATE potions SET name = ?, price = ?, vendor = ?, category = ?, strength = ?, flavor = ?, score = ? WHERE id = ?",
		existing.Name, existing.Price, existing.Vendor, existing.Category, existing.Strength, existing.Flavor, existing.Score, id)
	if err != nil {
		return models.Potion{}, err
	}

	return s.GetPotionByID(id)
}

// DeletePotion removes a potion from the catalog.
func (s *PotionService) DeletePotion(id string) error {
	res, err := s.db.Exec("DELETE FROM potions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountDistinctCategories counts the distinct category values in the catalog.
func (s *PotionService) CountDistinctCategories() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(DISTINCT category) FROM potions").Scan(&count)
	return count, err
}

// AverageScoreByVendor computes the average score per vendor.
func (s *PotionService) AverageScoreByVendor() ([]models.VendorScore, error) {
	rows, err := s.db.Query("SELECT vendor, AVG(score) FROM potions GROUP BY vendor ORDER BY vendor")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.VendorScore{}
	for rows.Next() {
		var vs models.VendorScore
		if err := rows.Scan(&vs.Vendor, &vs.AverageScore); err != nil {
			return nil, err
		}
		result = append(result, vs)
	}
	return result, rows.Err()
}

// AverageScoreByCategory computes the average score per category.
func (s *PotionService) AverageScoreByCategory() ([]models.CategoryScore, error) {
	rows, err := s.db.Query("SELECT category, AVG(score) FROM potions GROUP BY category ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.CategoryScore{}
	for rows.Next() {
		var cs models.CategoryScore
		if err := rows.Scan(&cs.Category, &cs.AverageScore); err != nil {
			return nil, err
		}
		result = append(result, cs)
	}
	return result, rows.Err()
}

// StrengthFlavorRatios computes strength / flavor for every potion. SQLite
// yields NULL when flavor is zero, which surfaces as a null ratio.
func (s *PotionService) StrengthFlavorRatios() ([]models.PotionRatio, error) {
	rows, err := s.db.Query("SELECT id, strength / flavor FROM potions ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.PotionRatio{}
	for rows.Next() {
		var pr models.PotionRatio
		var ratio sql.NullFloat64
		if err := rows.Scan(&pr.ID, &ratio); err != nil {
			return nil, err
		}
		if ratio.Valid {
			pr.StrengthFlavorRatio = &ratio.Float64
		}
		result = append(result, pr)
	}
	return result, rows.Err()
}

// Allowed values for the generic analytics search. Only these identifiers
// ever reach the SQL text.
var (
	searchGroupFields = map[string]bool{"vendor": true, "category": true}
	searchMetrics     = map[string]string{"avg": "AVG", "sum": "SUM", "count": "COUNT"}
	searchFields      = map[string]bool{"score": true, "price": true, "strength": true, "flavor": true}
)

// validateSearch checks the three search parameters against the allow-lists
// and reports every violation.
func validateSearch(groupBy, metric, field string) models.ValidationErrors {
	var errs models.ValidationErrors
	if !searchGroupFields[groupBy] {
		errs = append(errs, models.FieldError{Field: "groupBy", Message: "must be one of: vendor, category"})
	}
	if _, ok := searchMetrics[metric]; !ok {
		errs = append(errs, models.FieldError{Field: "metric", Message: "must be one of: avg, sum, count"})
	}
	if !searchFields[field] {
		errs = append(errs, models.FieldError{Field: "field", Message: "must be one of: score, price, strength, flavor"})
	}
	return errs
}

// AggregateSearch runs a group-by aggregation built from the three query
// parameters. Parameters outside the allow-lists are rejected before any
// SQL is assembled.
func (s *PotionService) AggregateSearch(groupBy, metric, field string) ([]map[string]any, error) {
	if errs := validateSearch(groupBy, metric, field); len(errs) > 0 {
		return nil, errs
	}

	query := fmt.Sprintf("SELECT %s, %s(%s) FROM potions GROUP BY %s ORDER BY %s",
		groupBy, searchMetrics[metric], field, groupBy, groupBy)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		var group string
		var value float64
		if err := rows.Scan(&group, &value); err != nil {
			return nil, err
		}
		result = append(result, map[string]any{"_id": group, metric: value})
	}
	return result, rows.Err()
}
