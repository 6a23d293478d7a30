package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"kalongo-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "kalongo_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	// AutoMigrate in parent->child order.
	if err := DB.AutoMigrate(
		&models.Department{},
		&models.Permission{},
		&models.Role{},
		&models.RolePermission{},
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
		&models.Folio{},
		&models.FolioCharge{},
		&models.FolioPayment{},
		&models.Receipt{},
		&models.Tax{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Expense{},
		&models.StaffProfile{},
		&models.Salary{},
		&models.MaintenanceRequest{},
		&models.HousekeepingRequest{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase inserts the baseline reference data on an empty database.
// Every block is idempotent; existing rows are left untouched.
func SeedDatabase() {
	seedDepartments()
	seedPermissionCatalog()
	seedRoles()
	seedAdminUser()
	seedRoomInventory()
	seedTaxes()
	seedMenus()
}

func seedDepartments() {
	var count int64
	DB.Model(&models.Department{}).Count(&count)
	if count > 0 {
		return
	}
	departments := []models.Department{
		{Code: models.SectorRooms, Name: "Rooms"},
		{Code: models.SectorRestaurant, Name: "Restaurant"},
		{Code: models.SectorBar, Name: "Bar"},
		{Code: models.SectorHousekeeping, Name: "Housekeeping"},
		{Code: models.SectorActivities, Name: "Activities"},
		{Code: models.SectorFrontOffice, Name: "Front Office"},
		{Code: models.SectorBackOffice, Name: "Back Office"},
	}
	if err := DB.Create(&departments).Error; err != nil {
		log.Printf("warning: failed to seed departments: %v", err)
		return
	}
	log.Println("Departments seeded")
}

// seedPermissionCatalog keeps the permissions table in sync with the code
// catalog: missing codes are inserted, stale names refreshed.
func seedPermissionCatalog() {
	for _, p := range models.PermissionCatalog {
		var existing models.Permission
		err := DB.Where("code = ?", p.Code).First(&existing).Error
		if err == nil {
			if existing.Name != p.Name {
				DB.Model(&existing).Update("name", p.Name)
			}
			continue
		}
		if err := DB.Create(&models.Permission{Code: p.Code, Name: p.Name}).Error; err != nil {
			log.Printf("warning: failed to seed permission %s: %v", p.Code, err)
		}
	}
}

func grantPermissions(roleID uint, codes []string) {
	for _, code := range codes {
		var count int64
		DB.Model(&models.RolePermission{}).
			Where("role_id = ? AND permission = ?", roleID, code).Count(&count)
		if count > 0 {
			continue
		}
		if err := DB.Create(&models.RolePermission{RoleID: roleID, Permission: code}).Error; err != nil {
			log.Printf("warning: failed to grant %s to role %d: %v", code, roleID, err)
		}
	}
}

func ensureRole(name, description string, system bool, codes []string) {
	var role models.Role
	err := DB.Where("name = ?", name).First(&role).Error
	if err != nil {
		role = models.Role{Name: name, Description: description, IsSystem: system}
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("warning: failed to create role %s: %v", name, err)
			return
		}
	}
	grantPermissions(role.ID, codes)
}

func seedRoles() {
	allCodes := make([]string, 0, len(models.PermissionCatalog))
	for _, p := range models.PermissionCatalog {
		allCodes = append(allCodes, p.Code)
	}
	ensureRole("Manager", "Full property access", true, allCodes)

	ensureRole("Receptionist", "Front desk: bookings, folios, payments", true, []string{
		models.PermCreateBooking,
		models.PermViewBookings,
		models.PermCheckOutBooking,
		models.PermCancelBooking,
		models.PermViewFolio,
		models.PermPostCharge,
		models.PermPostPayment,
		models.PermViewGuests,
		models.PermViewHousekeeping,
		models.PermCreateHousekeeping,
		models.PermCreateMaintenance,
	})

	ensureRole("Restaurant Staff", "POS orders and kitchen flow", true, []string{
		models.PermCreatePOSOrder,
		models.PermViewPOSOrders,
		models.PermUpdatePOSOrder,
	})

	log.Println("Roles ensured")
}

func seedAdminUser() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash default admin password: %v", err)
		return
	}

	var managerRole models.Role
	var roleID *uint
	if err := DB.Where("name = ?", "Manager").First(&managerRole).Error; err == nil {
		roleID = &managerRole.ID
	}
	var backOffice models.Department
	var deptID *uint
	if err := DB.Where("code = ?", models.SectorBackOffice).First(&backOffice).Error; err == nil {
		deptID = &backOffice.ID
	}

	admin := models.User{
		FullName:     "Administrator",
		Username:     "admin",
		Password:     string(hash),
		RoleID:       roleID,
		DepartmentID: deptID,
		IsManager:    true,
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("warning: failed to create default admin: %v", err)
		return
	}
	log.Println("Default admin seeded")
}

func seedRoomInventory() {
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard room", BasePricePerNight: decimal.NewFromInt(85000), IsActive: true},
			{Name: "Deluxe", Description: "Deluxe room", BasePricePerNight: decimal.NewFromInt(120000), IsActive: true},
			{Name: "Suite", Description: "Suite", BasePricePerNight: decimal.NewFromInt(180000), IsActive: true},
		}
		if err := DB.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
		} else {
			log.Println("Room types seeded")
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		var standard, deluxe, suite models.RoomType
		DB.Where("name = ?", "Standard").First(&standard)
		DB.Where("name = ?", "Deluxe").First(&deluxe)
		DB.Where("name = ?", "Suite").First(&suite)

		rooms := []models.Room{
			{Number: "101", RoomTypeID: &standard.ID, Status: models.RoomStatusVacant, Floor: "1"},
			{Number: "102", RoomTypeID: &standard.ID, Status: models.RoomStatusVacant, Floor: "1"},
			{Number: "201", RoomTypeID: &deluxe.ID, Status: models.RoomStatusVacant, Floor: "2"},
			{Number: "202", RoomTypeID: &deluxe.ID, Status: models.RoomStatusVacant, Floor: "2"},
			{Number: "301", RoomTypeID: &suite.ID, Status: models.RoomStatusVacant, Floor: "3"},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}
}

func seedTaxes() {
	var count int64
	DB.Model(&models.Tax{}).Count(&count)
	if count > 0 {
		return
	}
	taxes := []models.Tax{
		{
			Name:       "Value Added Tax",
			Code:       "VAT",
			Percentage: decimal.NewFromInt(18),
			TaxType:    models.TaxTypeExclusive,
			Sectors:    nil, // all sectors
			IsActive:   true,
		},
		{
			Name:       "Tourism Levy",
			Code:       "TOURISM",
			Percentage: decimal.NewFromInt(1),
			TaxType:    models.TaxTypeExclusive,
			Sectors:    []string{models.SectorRooms},
			IsActive:   true,
		},
	}
	if err := DB.Create(&taxes).Error; err != nil {
		log.Printf("warning: failed to seed taxes: %v", err)
		return
	}
	log.Println("Taxes seeded")
}

func seedMenus() {
	var count int64
	DB.Model(&models.Menu{}).Count(&count)
	if count > 0 {
		return
	}

	restaurant := models.Menu{Name: "Main Restaurant", Sector: models.SectorRestaurant, IsActive: true}
	bar := models.Menu{Name: "Pool Bar", Sector: models.SectorBar, IsActive: true}
	if err := DB.Create(&restaurant).Error; err != nil {
		log.Printf("warning: failed to seed restaurant menu: %v", err)
		return
	}
	if err := DB.Create(&bar).Error; err != nil {
		log.Printf("warning: failed to seed bar menu: %v", err)
		return
	}

	items := []models.MenuItem{
		{MenuID: restaurant.ID, Name: "Grilled Tilapia", Price: decimal.NewFromInt(18000), IsAvailable: true, SortOrder: 1},
		{MenuID: restaurant.ID, Name: "Chicken Curry", Price: decimal.NewFromInt(15000), IsAvailable: true, SortOrder: 2},
		{MenuID: restaurant.ID, Name: "Vegetable Rice", Price: decimal.NewFromInt(8000), IsAvailable: true, SortOrder: 3},
		{MenuID: bar.ID, Name: "Fresh Juice", Price: decimal.NewFromInt(5000), IsAvailable: true, SortOrder: 1},
		{MenuID: bar.ID, Name: "Local Beer", Price: decimal.NewFromInt(6000), IsAvailable: true, SortOrder: 2},
		{MenuID: bar.ID, Name: "Soda", Price: decimal.NewFromInt(3000), IsAvailable: true, SortOrder: 3},
	}
	if err := DB.Create(&items).Error; err != nil {
		log.Printf("warning: failed to seed menu items: %v", err)
		return
	}
	log.Println("Menus seeded")
}
