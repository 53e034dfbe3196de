package drm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jaypipes/pcidb"
)

var (
	pciOnce sync.Once
	pciDB   *pcidb.PCIDB
)

func loadPCIDB() *pcidb.PCIDB {
	pciOnce.Do(func() {
		// A missing hwdata database is not fatal; labels fall back to raw IDs.
		pciDB, _ = pcidb.New()
	})
	return pciDB
}

// deviceLabel resolves a vendor/model/revision label like
// "Advanced Micro Devices, Inc. [AMD/ATI] Navi 31 (rev c8)".
// Unresolvable IDs fall back to the raw vendor:device pair.
func deviceLabel(vendorID, deviceID, revision string) string {
	vendorID = strings.ToLower(strings.TrimSpace(vendorID))
	deviceID = strings.ToLower(strings.TrimSpace(deviceID))

	label := ""
	if db := loadPCIDB(); db != nil && vendorID != "" && deviceID != "" {
		if product, ok := db.Products[vendorID+deviceID]; ok && product != nil {
			vendorName := ""
			if vendor, ok := db.Vendors[vendorID]; ok && vendor != nil {
				vendorName = vendor.Name
			}
			if vendorName != "" {
				label = vendorName + " " + product.Name
			} else {
				label = product.Name
			}
		}
	}
	if label == "" {
		if vendorID == "" || deviceID == "" {
			return "Unknown device"
		}
		label = fmt.Sprintf("%s:%s", vendorID, deviceID)
	}

	if revision != "" && revision != "00" {
		label += fmt.Sprintf(" (rev %s)", revision)
	}
	return label
}
