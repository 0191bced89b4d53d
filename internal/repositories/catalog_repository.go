package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Tripcarte/easytix-booking/internal/domain"
	"github.com/Tripcarte/easytix-booking/internal/domain/models"
)

// CatalogRepository reads packages and resources. Both are maintained outside
// the booking flow.
type CatalogRepository struct {
	DB *sql.DB
}

func (r CatalogRepository) GetPackage(ctx context.Context, id string) (models.Package, error) {
	var p models.Package
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, package_name, resource FROM packages WHERE id=? LIMIT 1`, id,
	).Scan(&p.ID, &p.PackageName, &p.Resource)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Package{}, domain.NotFoundError{Resource: "Package", ID: id, Err: err}
	}
	if err != nil {
		return models.Package{}, storageErr("get package", err)
	}
	return p, nil
}

func (r CatalogRepository) GetResource(ctx context.Context, id string) (models.Resource, error) {
	var res models.Resource
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, resource_name, capacity FROM resources WHERE id=? LIMIT 1`, id,
	).Scan(&res.ID, &res.ResourceName, &res.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, domain.NotFoundError{Resource: "Resource", ID: id, Err: err}
	}
	if err != nil {
		return models.Resource{}, storageErr("get resource", err)
	}
	return res, nil
}
