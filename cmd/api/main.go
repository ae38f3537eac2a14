package main

import (
	"log"
	"time"

	"loja/internal/billing"
	"loja/internal/cache/memory"
	"loja/internal/config"
	"loja/internal/domain/model"
	"loja/internal/handler"
	"loja/internal/infra/db"
	"loja/internal/infra/gateway"
	infraRepo "loja/internal/infra/repository"
	"loja/internal/server"
	"loja/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.IndividualProfile{},
		&model.BusinessProfile{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Boleto{},
		&model.PixCharge{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repositories
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	txManager := infraRepo.NewGormTransactionManager(gormDB)

	// collaborators
	categoryCache := memory.NewCategoryCacheTTL(5 * time.Minute)
	checkoutGateway := gateway.NewHostedCheckoutGateway(cfg.GatewayWebhookSecret)
	boletoGen := billing.NewBoletoGenerator(billing.BoletoConfig{
		BankCode: cfg.BoletoBankCode,
		BankName: "Banco do Brasil",
		Agency:   cfg.BoletoAgency,
		Account:  cfg.BoletoAccount,
		DueDays:  cfg.BoletoDueDays,
	})
	pixGen := billing.NewPixGenerator(billing.PixConfig{
		Key:          cfg.PixKey,
		MerchantName: cfg.PixMerchantName,
		MerchantCity: cfg.PixMerchantCity,
	})

	// usecases
	registerUC := usecase.NewRegisterUsecase(txManager)
	authUC := usecase.NewAuthUsecase(cfg, customerRepo, profileRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, categoryCache)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	paymentUC := usecase.NewPaymentUsecase(txManager, paymentRepo, checkoutGateway, boletoGen, pixGen, decimal.Zero)

	e := server.New(cfg, server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, authUC),
		Product: handler.NewProductHandler(productUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(orderUC),
		Payment: handler.NewPaymentHandler(paymentUC),
	})

	addr := ":" + cfg.Port
	if err := server.Start(e, addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
