package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"loyaltypro/pkg/cache"
	"loyaltypro/pkg/config"
	"loyaltypro/pkg/database"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, slug cache will not be primed: %v", err)
		redisClient = nil
	}

	if err := seedDatabase(db, redisClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, redisClient *redis.Client, log *logger.Logger) error {
	tenants := []struct {
		name           string
		slug           string
		timezone       string
		plan           models.TenantPlan
		primaryColor   string
		secondaryColor string
	}{
		{"Cafetería Aroma", "cafeteria-aroma", "America/Lima", models.PlanPro, "#6F4E37", "#F5E6D3"},
		{"Barbería El Clásico", "barberia-el-clasico", "America/Mexico_City", models.PlanBasic, "#1B263B", "#E0E1DD"},
		{"Juguería La Fresca", "jugueria-la-fresca", "", models.PlanFree, "#2D6A4F", "#D8F3DC"},
	}

	for idx, tenantData := range tenants {
		var tenant models.Tenant
		result := db.Where("slug = ?", tenantData.slug).First(&tenant)
		if result.Error == nil {
			log.Info("Tenant %s already exists, skipping", tenantData.slug)
		} else {
			tenant = models.Tenant{
				Name:           tenantData.name,
				Slug:           tenantData.slug,
				Timezone:       tenantData.timezone,
				Plan:           tenantData.plan,
				PrimaryColor:   tenantData.primaryColor,
				SecondaryColor: tenantData.secondaryColor,
				IsActive:       true,
			}
			if tenantData.plan != models.PlanFree {
				expires := time.Now().UTC().Add(30 * 24 * time.Hour)
				tenant.PlanExpiresAt = &expires
			}
			if err := tenant.BeforeCreate(nil); err != nil {
				return fmt.Errorf("failed to generate tenant ID: %w", err)
			}
			if err := db.Create(&tenant).Error; err != nil {
				return fmt.Errorf("failed to create tenant %s: %w", tenantData.slug, err)
			}
			log.Info("Created tenant: %s (%s)", tenant.Name, tenant.Slug)
		}

		if err := seedUsers(db, log, tenant.ID, idx); err != nil {
			return err
		}
		if err := seedCustomers(db, log, tenant.ID, idx); err != nil {
			return err
		}
		if err := seedRewards(db, log, tenant.ID); err != nil {
			return err
		}

		if redisClient != nil {
			// Drop any stale cached branding so the seeded values show up
			key := fmt.Sprintf("tenant:slug:%s", tenant.Slug)
			if err := redisClient.Del(context.Background(), key).Err(); err != nil {
				log.Warn("Failed to invalidate slug cache for %s: %v", tenant.Slug, err)
			}
		}
	}

	return nil
}

func seedUsers(db *gorm.DB, log *logger.Logger, tenantID string, idx int) error {
	users := []struct {
		email    string
		name     string
		lastName string
		role     models.UserRole
	}{
		{fmt.Sprintf("owner%d@loyaltypro.test", idx+1), "Ana", "Torres", models.RoleOwner},
		{fmt.Sprintf("staff%d@loyaltypro.test", idx+1), "Luis", "Ramírez", models.RoleStaff},
	}

	for _, userData := range users {
		var existing models.User
		if db.Where("email = ?", userData.email).First(&existing).Error == nil {
			log.Info("User %s already exists, skipping", userData.email)
			continue
		}

		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

		user := &models.User{
			Email:    userData.email,
			Password: string(hashedPassword),
			Name:     userData.name,
			LastName: userData.lastName,
			Role:     userData.role,
			IsActive: true,
			TenantID: &tenantID,
		}
		if err := user.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}
		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Email, err)
			continue
		}
		log.Info("Created user: %s (%s)", user.Email, user.Role)

		notification := &models.Notification{
			UserID:  user.ID,
			Title:   "Bienvenido a LoyaltyPro",
			Message: "Tu cuenta de demostración está lista.",
			Type:    models.NotificationInfo,
		}
		if err := notification.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate notification ID: %w", err)
		}
		if err := db.Create(notification).Error; err != nil {
			log.Error("Failed to create welcome notification for %s: %v", user.Email, err)
		}
	}

	return nil
}

func seedCustomers(db *gorm.DB, log *logger.Logger, tenantID string, idx int) error {
	customers := []struct {
		name     string
		lastName string
		email    string
		points   int
		stamps   int
	}{
		{"María", "López", fmt.Sprintf("maria.lopez%d@example.com", idx+1), 120, 4},
		{"Carlos", "García", fmt.Sprintf("carlos.garcia%d@example.com", idx+1), 45, 2},
		{"Lucía", "Fernández", fmt.Sprintf("lucia.fernandez%d@example.com", idx+1), 300, 9},
		{"Jorge", "Mendoza", fmt.Sprintf("jorge.mendoza%d@example.com", idx+1), 0, 0},
	}

	for _, customerData := range customers {
		var existing models.Customer
		if db.Where("tenant_id = ? AND email = ?", tenantID, customerData.email).First(&existing).Error == nil {
			continue
		}

		customer := &models.Customer{
			TenantID: tenantID,
			Name:     customerData.name,
			LastName: customerData.lastName,
			Email:    customerData.email,
			Points:   customerData.points,
			Stamps:   customerData.stamps,
		}
		if customerData.points > 0 {
			lastCheckin := time.Now().UTC().Add(-time.Duration(customerData.points) * time.Hour)
			customer.LastCheckinAt = &lastCheckin
		}
		if err := customer.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate customer ID: %w", err)
		}
		if err := db.Create(customer).Error; err != nil {
			log.Error("Failed to create customer %s: %v", customerData.email, err)
			continue
		}
		log.Info("Created customer: %s %s", customer.Name, customer.LastName)
	}

	return nil
}

func seedRewards(db *gorm.DB, log *logger.Logger, tenantID string) error {
	rewards := []struct {
		name        string
		description string
		pointsCost  int
		active      bool
	}{
		{"Café gratis", "Un café americano de cortesía", 100, true},
		{"Postre del día", "Cualquier postre de la vitrina", 250, true},
		{"Descuento 20%", "Descuento en la siguiente compra", 500, false},
	}

	for _, rewardData := range rewards {
		var existing models.Reward
		if db.Where("tenant_id = ? AND name = ?", tenantID, rewardData.name).First(&existing).Error == nil {
			continue
		}

		reward := &models.Reward{
			TenantID:    tenantID,
			Name:        rewardData.name,
			Description: rewardData.description,
			PointsCost:  rewardData.pointsCost,
			Active:      rewardData.active,
		}
		if err := reward.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate reward ID: %w", err)
		}
		if err := db.Create(reward).Error; err != nil {
			log.Error("Failed to create reward %s: %v", rewardData.name, err)
			continue
		}
		log.Info("Created reward: %s (%d pts)", reward.Name, reward.PointsCost)
	}

	return nil
}
