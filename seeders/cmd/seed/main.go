package main

import (
	"flag"
	"log"

	"production-tracking/pkg/config"
	"production-tracking/pkg/database/postgresql"
	"production-tracking/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runUsers := flag.Bool("users", false, "Создать демо-пользователей (менеджер и сотрудник)")
	runOrders := flag.Bool("orders", false, "Создать демо-заказ с конвейером этапов")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -users -orders)")

	flag.Parse()

	if !*runUsers && !*runOrders && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if *runUsers || *runAll {
		seeders.SeedDemoUsers(db)
	}
	if *runOrders || *runAll {
		seeders.SeedDemoOrders(db)
	}

	log.Println("🏁 Сидеры отработали.")
}
