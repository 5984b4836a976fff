// seed genera el script SQL de datos semilla para los catálogos globales
// (unidades, categorías de insumo, tipos de tratamiento, razas y categorías
// financieras). Los nombres de finance_categories son contrato con el módulo
// financiero: los asientos automáticos se resuelven por (ledger, name).
//
// Uso: go run ./cmd/seed [ruta/salida.sql]
// Por defecto escribe: internal/infrastructure/postgres/migrations/002_seed_catalogs.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var units = [][2]string{
	{"Kilogramo", "kg"},
	{"Gramo", "g"},
	{"Litro", "l"},
	{"Mililitro", "ml"},
	{"Dosis", "dosis"},
	{"Bulto", "bulto"},
	{"Unidad", "ud"},
}

var supplyCategories = []string{
	"Alimento", "Medicamento", "Fertilizante", "Semilla", "Herramienta", "Otro",
}

var treatmentTypes = []string{
	"Vacunación", "Desparasitación", "Vitaminización", "Antibiótico", "Baño garrapaticida", "Otro",
}

var breeds = []string{
	"Brahman", "Cebú", "Holstein", "Normando", "Angus", "Gyr", "Criollo",
}

var expenseCategories = []string{
	"Compra de Insumos", "Alimentación", "Sanidad", "Compra de Animales",
	"Pérdidas por Mortalidad", "Mano de Obra", "Mantenimiento", "Otros",
}

var incomeCategories = []string{
	"Venta de Animales", "Venta de Leche", "Otros",
}

func main() {
	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_catalogs.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	var b strings.Builder
	b.WriteString("-- Datos semilla de catálogos globales. Generado por cmd/seed; idempotente.\n")
	b.WriteString("-- Los nombres de finance_categories son contrato con el módulo financiero:\n")
	b.WriteString("-- los asientos automáticos se resuelven por (ledger, name).\n\n")

	b.WriteString("INSERT INTO units (id, name, symbol) VALUES\n")
	for i, u := range units {
		writeRow(&b, i == len(units)-1, "(gen_random_uuid(), %s, %s)", sqlString(u[0]), sqlString(u[1]))
	}
	b.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")

	writeNamed(&b, "supply_categories", supplyCategories)
	writeNamed(&b, "treatment_types", treatmentTypes)
	writeNamed(&b, "breeds", breeds)

	b.WriteString("INSERT INTO finance_categories (id, ledger, name) VALUES\n")
	total := len(expenseCategories) + len(incomeCategories)
	n := 0
	for _, name := range expenseCategories {
		n++
		writeRow(&b, n == total, "(gen_random_uuid(), 'EXPENSE', %s)", sqlString(name))
	}
	for _, name := range incomeCategories {
		n++
		writeRow(&b, n == total, "(gen_random_uuid(), 'INCOME', %s)", sqlString(name))
	}
	b.WriteString("ON CONFLICT (ledger, name) DO NOTHING;\n")

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s\n", outPath)
}

func writeNamed(b *strings.Builder, table string, names []string) {
	fmt.Fprintf(b, "INSERT INTO %s (id, name) VALUES\n", table)
	for i, name := range names {
		writeRow(b, i == len(names)-1, "(gen_random_uuid(), %s)", sqlString(name))
	}
	b.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")
}

func writeRow(b *strings.Builder, last bool, format string, args ...any) {
	b.WriteString("    ")
	fmt.Fprintf(b, format, args...)
	if last {
		b.WriteString("\n")
	} else {
		b.WriteString(",\n")
	}
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
