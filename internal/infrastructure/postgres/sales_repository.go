package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// SalesRepo implementa repository.SalesRepository sobre la tabla sales_detail.
// Solo empuja predicados al servidor; toda la agregación de negocio (costos,
// márgenes, ABC, churn) vive en el dominio.
type SalesRepo struct {
	pool   *pgxpool.Pool
	policy sales.Policy
}

func NewSalesRepo(pool *pgxpool.Pool, policy sales.Policy) *SalesRepo {
	return &SalesRepo{pool: pool, policy: policy}
}

const rowColumns = `
	date, year, month,
	COALESCE(customer_name, ''), COALESCE(sales_rep, ''), COALESCE(supplier, ''),
	COALESCE(product_code, ''), COALESCE(product_name, ''),
	COALESCE(category, ''), COALESCE(product_group, ''),
	COALESCE(quantity, 0), COALESCE(volume_liters, 0), COALESCE(amount, 0),
	cost, purchase_price, receipt_type`

// canonicalRankedSQL rankea los nombres por código; rn = 1 es el nombre
// vigente (la última fila cargada por fecha, con el id como desempate estable).
const canonicalRankedSQL = `
	SELECT product_code, product_name,
	       ROW_NUMBER() OVER (PARTITION BY product_code ORDER BY date DESC, id DESC) AS rn
	FROM sales_detail
	WHERE product_code <> '' AND product_code IS NOT NULL`

// CommercialRows devuelve las filas del período bajo la política comercial
// (años vigentes, sin servicios ni gasto interno).
func (r *SalesRepo) CommercialRows(ctx context.Context, f sales.Filter) ([]sales.Row, error) {
	var b whereBuilder
	b.applyPolicy(r.policy)
	b.applyFilter(f)
	return r.queryRows(ctx, "sales.commercial_rows", b)
}

// AllRows devuelve las filas del filtro sin aplicar la política comercial.
// Lo usan los reportes que necesitan el histórico completo.
func (r *SalesRepo) AllRows(ctx context.Context, f sales.Filter) ([]sales.Row, error) {
	var b whereBuilder
	b.applyFilter(f)
	return r.queryRows(ctx, "sales.all_rows", b)
}

func (r *SalesRepo) queryRows(ctx context.Context, op string, b whereBuilder) ([]sales.Row, error) {
	query := "SELECT " + rowColumns + " FROM sales_detail" + b.clause() + " ORDER BY date, id"

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []sales.Row
	for rows.Next() {
		var (
			row sales.Row
			rt  int32
		)
		err := rows.Scan(
			&row.Date, &row.Year, &row.Month,
			&row.CustomerName, &row.SalesRep, &row.Supplier,
			&row.ProductCode, &row.ProductName,
			&row.Category, &row.ProductGroup,
			&row.Quantity, &row.VolumeLiters, &row.Amount,
			&row.Cost, &row.PurchasePrice, &rt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: escanear fila: %w", op, err)
		}
		row.ReceiptType = sales.ReceiptType(rt)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// FallbackCosts devuelve por código el mayor costo unitario positivo
// registrado en todo el histórico. Es el respaldo cuando el período
// consultado no trae costo propio.
func (r *SalesRepo) FallbackCosts(ctx context.Context) (sales.FallbackCosts, error) {
	const query = `
		SELECT product_code, MAX(COALESCE(cost, purchase_price))
		FROM sales_detail
		WHERE product_code <> ''
		  AND COALESCE(cost, purchase_price) > 0
		GROUP BY product_code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales.fallback_costs: %w", err)
	}
	defer rows.Close()

	costs := make(sales.FallbackCosts)
	for rows.Next() {
		var (
			code string
			c    decimal.Decimal
		)
		if err := rows.Scan(&code, &c); err != nil {
			return nil, fmt.Errorf("sales.fallback_costs: escanear fila: %w", err)
		}
		costs[code] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.fallback_costs: %w", err)
	}
	return costs, nil
}

// CanonicalNames devuelve el nombre vigente por código de producto.
func (r *SalesRepo) CanonicalNames(ctx context.Context) (map[string]string, error) {
	query := "SELECT product_code, product_name FROM (" + canonicalRankedSQL + ") c WHERE c.rn = 1"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales.canonical_names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, fmt.Errorf("sales.canonical_names: escanear fila: %w", err)
		}
		names[code] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.canonical_names: %w", err)
	}
	return names, nil
}

var dimensionColumns = map[repository.Dimension]string{
	repository.DimSalesReps:     "sales_rep",
	repository.DimCustomers:     "customer_name",
	repository.DimSuppliers:     "supplier",
	repository.DimCategories:    "category",
	repository.DimProductGroups: "product_group",
}

// Distinct lista los valores de una dimensión bajo la política comercial y el
// filtro dado. Para productos devuelve nombres canónicos, para el resto la
// columna directa.
func (r *SalesRepo) Distinct(ctx context.Context, d repository.Dimension, f sales.Filter) ([]string, error) {
	var b whereBuilder
	b.applyPolicy(r.policy)
	b.applyFilter(f)

	var query string
	if d == repository.DimProducts {
		query = "SELECT DISTINCT c.product_name FROM (" + canonicalRankedSQL + ") c " +
			"WHERE c.rn = 1 AND c.product_code IN (SELECT product_code FROM sales_detail" + b.clause() + ") " +
			"ORDER BY c.product_name"
	} else {
		col, ok := dimensionColumns[d]
		if !ok {
			return nil, fmt.Errorf("sales.distinct: %w: %q", domain.ErrUnknownDimension, d)
		}
		b.add(col + " IS NOT NULL")
		b.add(col + " <> ''")
		query = "SELECT DISTINCT " + col + " FROM sales_detail" + b.clause() + " ORDER BY " + col
	}

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("sales.distinct: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("sales.distinct: escanear fila: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.distinct: %w", err)
	}
	return values, nil
}
