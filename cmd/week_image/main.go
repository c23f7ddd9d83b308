package main

import (
	"fmt"
	"os"
	"time"

	"github.com/valegrete/academia_bot/internal/controller/callbacks/common"
)

func main() {
	// Datos de ejemplo para comprobar el render a ojo
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Retrocedemos hasta el domingo de la semana actual
	for start.Weekday() != time.Sunday {
		start = start.AddDate(0, 0, -1)
	}

	days := make([]common.WeekDay, 7)
	for i := range days {
		days[i] = common.WeekDay{Date: start.AddDate(0, 0, i)}
	}

	// Lunes
	days[1].Blocks = []common.WeekBlock{
		{Name: "Piano infantil", StartMinute: 9 * 60, EndMinute: 10 * 60},
		{Name: "Coro juvenil", StartMinute: 9*60 + 30, EndMinute: 10*60 + 30, Conflict: true},
		{Name: "Guitarra", StartMinute: 16 * 60, EndMinute: 17 * 60},
	}
	// Miércoles
	days[3].Blocks = []common.WeekBlock{
		{Name: "Violín avanzado", StartMinute: 10 * 60, EndMinute: 11*60 + 30},
	}
	// Viernes
	days[5].Blocks = []common.WeekBlock{
		{Name: "Ensayo general", StartMinute: 18 * 60, EndMinute: 20 * 60, Emergency: true},
	}

	imageData, err := common.RenderWeekImage(days, now)
	if err != nil {
		fmt.Printf("Error al generar la imagen: %v\n", err)
		os.Exit(1)
	}

	filename := "semana.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Error al guardar el archivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Imagen guardada en %s\n", filename)
	fmt.Printf("📅 Semana: %s - %s\n",
		start.Format("02/01/2006"), start.AddDate(0, 0, 6).Format("02/01/2006"))
}
