package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
)

// ProfitabilityPDFGenerator renderiza el reporte de rentabilidad como PDF
// descargable (implementado en infraestructura con Maroto).
type ProfitabilityPDFGenerator interface {
	Generate(ctx context.Context, rep *dto.ProductProfitabilityDTO, generatedAt time.Time) ([]byte, error)
}
