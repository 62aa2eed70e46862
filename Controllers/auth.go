package Controllers

import (
	"log"
	"net/http"

	"github.com/yunusabdullaev/crm-clinic-sub000/Models"
	"github.com/yunusabdullaev/crm-clinic-sub000/Utils/Token"

	"github.com/gin-gonic/gin"
)

func CurrentUser(c *gin.Context) {
	user_id, err := Token.ExtractTokenID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := Models.GetUserByID(user_id)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var output struct {
		ID            uint   `json:"ID"`
		Username      string `json:"username"`
		Permission    int    `json:"permission"`
		ClinicGroupID uint   `json:"clinic_group_id"`
		CanDiscount   bool   `json:"can_discount"`
	}
	output.ID = user_id
	output.Username = user.Username
	output.Permission = user.Permission
	output.ClinicGroupID = user.ClinicGroupID
	if user.Permission == Models.PermissionDoctor {
		// Advisory only, for optimistic UI. Completion re-reads the grant.
		if doctor, err := Models.GetDoctorByUserID(user.ID); err == nil {
			output.CanDiscount = doctor.CanDiscount
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": output})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, token, err := Models.LoginCheck(input.Username, input.Password)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username or password is incorrect."})
		return
	}

	user, _ := Models.GetUserByID(uid)

	if user.IsFrozen {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User Frozen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login Successful", "jwt": token, "permission": user.Permission})

}

type RegisterInput struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Permission    int    `json:"permission"`
	ClinicGroupID uint   `json:"clinic_group_id"`
}

// RegisterStaff creates a receptionist or boss account inside the caller's
// clinic group.
func RegisterStaff(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Permission != Models.PermissionReceptionist && input.Permission != Models.PermissionBoss {
		c.JSON(http.StatusBadRequest, gin.H{"error": "permission must be receptionist or boss"})
		return
	}

	user := Models.User{}

	user.Username = input.Username
	user.Password = input.Password
	user.Permission = input.Permission
	user.ClinicGroupID = getClinicGroupID(c)
	_, err := user.SaveUser()

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "validated"})
}

// RegisterClinicGroup is the public tenant signup: it creates the clinic
// group and its boss account in one step.
func RegisterClinicGroup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
		Address  string `json:"address"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := Models.ClinicGroup{Name: input.Name, Address: input.Address, Phone: input.Phone}

	if err := Models.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := Models.User{}

	user.Username = input.Name
	user.Password = input.Password
	user.Permission = Models.PermissionBoss
	user.ClinicGroupID = group.ID
	_, err := user.SaveUser()
	if err != nil {
		log.Println(err)
		c.String(http.StatusBadRequest, "Failed To Register User")
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "validated"})
}

func SaveFcmToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	deviceToken := Models.DeviceToken{UserID: user_id, Value: input.Token}
	if err := Models.DB.Save(&deviceToken).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nil)
}

// FreezeUser toggles a user's frozen state. Superadmin only.
func FreezeUser(c *gin.Context) {
	var input struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user Models.User
	if err := Models.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.ChangeState()
	if err := Models.DB.Model(&Models.User{}).Where("id = ?", user.ID).Update("is_frozen", user.IsFrozen).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "is_frozen": user.IsFrozen})
}

// FetchClinicGroups lists every tenant. Superadmin only.
func FetchClinicGroups(c *gin.Context) {
	var groups []Models.ClinicGroup
	if err := Models.DB.Model(&Models.ClinicGroup{}).Find(&groups).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, groups)
}
