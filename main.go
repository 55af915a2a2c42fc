package main

import (
	"context"
	"log"

	"canteen-orders/config"
	"canteen-orders/internal/api/http"
	"canteen-orders/internal/cart"
	"canteen-orders/internal/notify"
	"canteen-orders/internal/service"
	"canteen-orders/internal/storage"
)

const orderUpdatesTopic = "order-updates"

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	carts := cart.NewStore(cart.NewRedisPersistence(rdb, cart.DefaultCartTTL))

	writer := config.NewKafkaWriter(orderUpdatesTopic)
	defer writer.Close()
	publisher := storage.NewKafkaPublisher(writer)

	numbers := service.NewNumberGenerator(repo)
	issuer := service.PaymentQRIssuer{BaseURL: config.PaymentBaseURL()}
	orders := service.NewOrderService(repo, carts, numbers, issuer, publisher)

	reader := config.NewKafkaReader(orderUpdatesTopic, "order-svc")
	defer reader.Close()
	updates := notify.NewKafkaChannel(reader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go updates.Start(ctx)

	handler := httpapi.NewHandler(carts, orders, updates)
	httpapi.StartServer(config.ListenAddr(), httpapi.NewRouter(handler))
}
