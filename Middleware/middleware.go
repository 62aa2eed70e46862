package Middleware

import (
	"fmt"
	"net/http"

	"github.com/yunusabdullaev/crm-clinic-sub000/Models"
	"github.com/yunusabdullaev/crm-clinic-sub000/Utils/Token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := Token.TokenValid(c)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetClinicGroup installs a tenant-scoped DB handle so every query made by a
// controller is filtered to the caller's clinic group.
func SetClinicGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := Models.GetUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if user.IsFrozen {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User Frozen"})
			c.Abort()
			return
		}

		c.Set("clinicGroupID", user.ClinicGroupID)
		c.Set("userID", user.ID)
		c.Set("permission", user.Permission)

		dbWrapper := func(tableName string) *gorm.DB {
			if tableName == "" {
				return Models.DB.Where("clinic_group_id = ?", user.ClinicGroupID)
			}
			return Models.DB.Where(fmt.Sprintf("%s.clinic_group_id = ?", tableName), user.ClinicGroupID)
		}

		c.Set("db", dbWrapper)
		c.Next()
	}
}

// PermissionCheck admits users at or above the given role level.
func PermissionCheck(minimum int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user_id, err := Token.ExtractTokenID(c)

		if err != nil {
			c.String(http.StatusBadRequest, "Unauthorized Token Extraction")
			c.Abort()
			return
		}

		user, err := Models.GetUserByID(user_id)
		if err != nil {
			c.String(http.StatusBadRequest, "Unauthorized User Extraction")
			c.Abort()
			return
		}

		if user.Permission >= minimum {
			c.Next()
		} else {
			c.String(http.StatusForbidden, "Unauthorized Not Enough Permission")
			c.Abort()
		}
	}
}
