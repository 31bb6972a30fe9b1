package equipment

import (
	"log"

	"github.com/EgorLis/equip-catalog/internal/catalog"
)

type Handler struct {
	Log     *log.Logger
	Catalog *catalog.Service
}
