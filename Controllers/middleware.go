package Controllers

import (
	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// getScopedDB returns the tenant-filtered DB handle installed by the
// SetClinicGroup middleware, optionally qualified with a table name for
// joined queries.
func getScopedDB(c *gin.Context, tableName string) *gorm.DB {
	db, exists := c.Get("db")
	if !exists {
		return Models.DB
	}

	dbFunc, ok := db.(func(string) *gorm.DB)
	if !ok {
		return Models.DB
	}
	return dbFunc(tableName)
}

func getClinicGroupID(c *gin.Context) uint {
	id, exists := c.Get("clinicGroupID")
	if !exists {
		return 0
	}
	groupID, ok := id.(uint)
	if !ok {
		return 0
	}
	return groupID
}
