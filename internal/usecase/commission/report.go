package commission

import (
	"fmt"
	"sort"
	"strings"
	"time"

	domain "crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/domain/entity"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const ruleWidth = 87

var (
	rule      = strings.Repeat("═", ruleWidth)
	thinRule  = strings.Repeat("─", ruleWidth-2)
	separator = strings.Repeat("═", ruleWidth-2)
	hundred   = decimal.NewFromInt(100)
)

// formatPesos renders an amount the es-CO way: "$1.234.567" or "$1.234,50".
func formatPesos(d decimal.Decimal) string {
	if d.IsInteger() {
		return "$" + humanize.FormatInteger("#.###,", int(d.IntPart()))
	}
	return "$" + humanize.FormatFloat("#.###,##", d.InexactFloat64())
}

// FormatCOP is formatPesos with the currency suffix.
func FormatCOP(d decimal.Decimal) string { return formatPesos(d) + " COP" }

func sumDecimal[T any](items []T, f func(T) decimal.Decimal) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, it T, _ int) decimal.Decimal { return acc.Add(f(it)) }, decimal.Zero)
}

func lineBase(l domain.Line) decimal.Decimal   { return l.Base }
func lineAmount(l domain.Line) decimal.Decimal { return l.Amount }
func lineCredits(l domain.Line) int            { return l.Credits }

type advisorBlock struct {
	id       uint64
	name     string
	lines    []domain.Line
	entities []string
	credits  int
	amount   decimal.Decimal
	total    decimal.Decimal
}

// byAdvisor groups lines per advisor, highest total first. Ties keep the
// lower advisor id first so the output is stable.
func byAdvisor(lines []domain.Line) []advisorBlock {
	groups := lo.GroupBy(lines, func(l domain.Line) uint64 { return l.AdvisorID })
	ids := lo.Uniq(lo.Map(lines, func(l domain.Line, _ int) uint64 { return l.AdvisorID }))
	blocks := lo.Map(ids, func(id uint64, _ int) advisorBlock {
		ls := groups[id]
		return advisorBlock{
			id:       id,
			name:     ls[0].AdvisorName,
			lines:    ls,
			entities: lo.Uniq(lo.Map(ls, func(l domain.Line, _ int) string { return l.EntityName })),
			credits:  lo.SumBy(ls, lineCredits),
			amount:   sumDecimal(ls, lineAmount),
			total:    sumDecimal(ls, lineBase),
		}
	})
	sort.SliceStable(blocks, func(i, j int) bool {
		if c := blocks[i].total.Cmp(blocks[j].total); c != 0 {
			return c > 0
		}
		return blocks[i].id < blocks[j].id
	})
	return blocks
}

func banner(b *strings.Builder, title string) {
	pad := (ruleWidth - len([]rune(title))) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(b, "%s\n%s%s\n%s\n\n", rule, strings.Repeat(" ", pad), title, rule)
}

func medal(pos int) string {
	switch pos {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏅"
	}
}

// RenderReport builds the TXT report for the persisted lines. The output
// depends only on its arguments.
func RenderReport(lines []domain.Line, period string, advisorID *uint64, generatedAt time.Time) string {
	blocks := byAdvisor(lines)
	total := sumDecimal(lines, lineBase)
	totalAmount := sumDecimal(lines, lineAmount)
	totalCredits := lo.SumBy(lines, lineCredits)
	bankLines := lo.Filter(lines, func(l domain.Line, _ int) bool { return l.EntityType == entity.TypeBank })
	instLines := lo.Filter(lines, func(l domain.Line, _ int) bool { return l.EntityType == entity.TypeInstitution })

	scope := "Todos los asesores"
	if advisorID != nil {
		scope = "Asesor específico"
	}

	var b strings.Builder
	b.WriteString("\n╔" + strings.Repeat("═", ruleWidth-1) + "╗\n")
	fmt.Fprintf(&b, "║%s║\n", centered("REPORTE DE COMISIONES CALCULADAS", ruleWidth-1))
	fmt.Fprintf(&b, "║%s║\n", centered("AGRUPADO POR ASESOR", ruleWidth-1))
	b.WriteString("╚" + strings.Repeat("═", ruleWidth-1) + "╝\n\n")

	fmt.Fprintf(&b, "📅 PERIODO: %s\n", period)
	fmt.Fprintf(&b, "📊 FECHA DE GENERACIÓN: %s\n", generatedAt.Format("2/1/2006, 15:04:05"))
	fmt.Fprintf(&b, "👤 FILTRO DE ASESOR: %s\n", scope)
	b.WriteString("🏦 SISTEMA: Comisión fija por cada millón de pesos (Sistema Colombiano)\n\n")

	banner(&b, "RESUMEN GENERAL")
	fmt.Fprintf(&b, "💰 TOTAL DE COMISIONES CALCULADAS: %s\n", FormatCOP(total))
	fmt.Fprintf(&b, "👥 TOTAL DE ASESORES CON COMISIONES: %d\n", len(blocks))
	b.WriteString("🏛️ DISTRIBUCIÓN POR ENTIDAD:\n")
	fmt.Fprintf(&b, "   • Bancos: %d comisiones\n", len(bankLines))
	fmt.Fprintf(&b, "   • Financieras: %d comisiones\n", len(instLines))
	fmt.Fprintf(&b, "📊 TOTAL DE CRÉDITOS: %d\n", totalCredits)
	fmt.Fprintf(&b, "💵 MONTO TOTAL GESTIONADO: %s\n\n", FormatCOP(totalAmount))

	banner(&b, "DETALLE DE COMISIONES POR ASESOR")
	for i, a := range blocks {
		fmt.Fprintf(&b, "┌%s┐\n", thinRule)
		fmt.Fprintf(&b, "│ %02d. %-*s │\n", i+1, ruleWidth-8, strings.ToUpper(a.name))
		fmt.Fprintf(&b, "└%s┘\n\n", thinRule)

		fmt.Fprintf(&b, "👤 ASESOR: %s\n", a.name)
		fmt.Fprintf(&b, "🏢 ENTIDADES TRABAJADAS: %s\n", strings.Join(a.entities, ", "))
		fmt.Fprintf(&b, "🔢 NÚMERO DE ENTIDADES: %d\n\n", len(a.lines))

		b.WriteString("📊 RESUMEN TOTAL DEL ASESOR:\n")
		fmt.Fprintf(&b, "   📈 Total Créditos Aprobados: %d\n", a.credits)
		fmt.Fprintf(&b, "   💵 Total Monto Gestionado: %s\n", FormatCOP(a.amount))
		fmt.Fprintf(&b, "   🔢 Total Millones Gestionados: %d\n", lo.SumBy(a.lines, func(l domain.Line) int64 { return l.Millions }))
		fmt.Fprintf(&b, "   💎 Total Comisión: %s\n\n", FormatCOP(a.total))

		b.WriteString("🏛️ DETALLE POR ENTIDAD:\n")
		for j, l := range a.lines {
			fmt.Fprintf(&b, "\n   %d. %s (%s)\n", j+1, l.EntityName, l.EntityType)
			fmt.Fprintf(&b, "      📈 Créditos: %d\n", l.Credits)
			fmt.Fprintf(&b, "      💵 Monto: %s\n", FormatCOP(l.Amount))
			fmt.Fprintf(&b, "      🔢 Millones: %d\n", l.Millions)
			fmt.Fprintf(&b, "      💎 Comisión/Millón: %s\n", FormatCOP(l.Rate))
			fmt.Fprintf(&b, "      🧮 Cálculo: %d × %s = %s\n", l.Millions, formatPesos(l.Rate), FormatCOP(l.Base))
		}

		fmt.Fprintf(&b, "\n✅ ESTADO: %s\n", domain.StatusPaid)
		fmt.Fprintf(&b, "📅 PERIODO: %s\n\n", period)
		if i < len(blocks)-1 {
			b.WriteString(separator + "\n")
		}
	}

	b.WriteString("\n")
	banner(&b, "RANKING DE ASESORES")
	b.WriteString("📊 TOP 10 ASESORES CON MAYORES COMISIONES:\n")
	for i, a := range blocks[:min(10, len(blocks))] {
		share := a.total.Div(total).Mul(hundred).StringFixed(1)
		fmt.Fprintf(&b, "\n%s %2d. %s\n", medal(i+1), i+1, a.name)
		fmt.Fprintf(&b, "   💰 Comisión Total: %s (%s%%)\n", FormatCOP(a.total), share)
		fmt.Fprintf(&b, "   🏢 Entidades: %d (%s)\n", len(a.lines), strings.Join(a.entities, ", "))
		fmt.Fprintf(&b, "   📈 Créditos: %d\n", a.credits)
		fmt.Fprintf(&b, "   💵 Monto Gestionado: %s\n", FormatCOP(a.amount))
	}

	b.WriteString("\n\n")
	banner(&b, "ESTADÍSTICAS DETALLADAS")
	b.WriteString("📊 DISTRIBUCIÓN POR TIPO DE ENTIDAD:\n\n")
	b.WriteString("🏦 BANCOS:\n")
	writeTypeStats(&b, bankLines, "bancos", "Bancos")
	b.WriteString("\n🏛️ FINANCIERAS:\n")
	writeTypeStats(&b, instLines, "financieras", "Financieras")

	n := decimal.NewFromInt(int64(len(blocks)))
	b.WriteString("\n📈 ESTADÍSTICAS GENERALES:\n")
	fmt.Fprintf(&b, "   💎 Comisión promedio por asesor: %s\n", FormatCOP(total.Div(n).Round(0)))
	fmt.Fprintf(&b, "   🔢 Promedio de créditos por asesor: %s\n", decimal.NewFromInt(int64(totalCredits)).Div(n).Round(0))
	fmt.Fprintf(&b, "   💵 Promedio de monto por asesor: %s\n", FormatCOP(totalAmount.Div(n).Round(0)))
	fmt.Fprintf(&b, "   🏛️ Promedio de entidades por asesor: %s\n\n", decimal.NewFromInt(int64(len(lines))).Div(n).StringFixed(1))

	banner(&b, "LISTADO DE ENTIDADES")
	b.WriteString("🏦 BANCOS TRABAJADOS:\n")
	writeEntityListing(&b, bankLines)
	b.WriteString("\n🏛️ FINANCIERAS TRABAJADAS:\n")
	writeEntityListing(&b, instLines)

	b.WriteString("\n\n")
	banner(&b, "INFORMACIÓN TÉCNICA")
	b.WriteString("🔧 SISTEMA DE CÁLCULO: Comisión fija por cada millón de pesos\n")
	fmt.Fprintf(&b, "📝 FÓRMULA: %s\n", systemFormula)
	b.WriteString("🎯 CRITERIOS: Solo créditos con estado: Aprobado, Desembolsado, Activo\n")
	b.WriteString("📊 AGRUPACIÓN: Por asesor, mostrando detalle de cada entidad\n")
	fmt.Fprintf(&b, "🔢 TOTAL DE REGISTROS: %d comisiones individuales\n", len(lines))
	fmt.Fprintf(&b, "👥 TOTAL DE ASESORES: %d asesores únicos\n", len(blocks))
	b.WriteString("📄 GENERADO POR: Sistema de Gestión de Comisiones v1.0\n\n")
	banner(&b, "FIN DEL REPORTE")
	return b.String()
}

func centered(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func writeTypeStats(b *strings.Builder, lines []domain.Line, lower, title string) {
	advisors := len(lo.UniqBy(lines, func(l domain.Line) uint64 { return l.AdvisorID }))
	entities := len(lo.UniqBy(lines, func(l domain.Line) uint64 { return l.EntityID }))
	total := sumDecimal(lines, lineBase)
	avg := decimal.Zero
	if advisors > 0 {
		avg = total.Div(decimal.NewFromInt(int64(advisors))).Round(0)
	}
	fmt.Fprintf(b, "   👥 Asesores que trabajaron con %s: %d\n", lower, advisors)
	fmt.Fprintf(b, "   🏛️ %s diferentes: %d\n", title, entities)
	fmt.Fprintf(b, "   💰 Total comisiones: %s\n", FormatCOP(total))
	fmt.Fprintf(b, "   📈 Total créditos: %d\n", lo.SumBy(lines, lineCredits))
	fmt.Fprintf(b, "   💵 Total monto: %s\n", FormatCOP(sumDecimal(lines, lineAmount)))
	fmt.Fprintf(b, "   📊 Promedio por asesor: %s\n", FormatCOP(avg))
}

func writeEntityListing(b *strings.Builder, lines []domain.Line) {
	groups := lo.GroupBy(lines, func(l domain.Line) uint64 { return l.EntityID })
	ids := lo.Uniq(lo.Map(lines, func(l domain.Line, _ int) uint64 { return l.EntityID }))
	for i, id := range ids {
		ls := groups[id]
		names := lo.Uniq(lo.Map(ls, func(l domain.Line, _ int) string { return l.AdvisorName }))
		fmt.Fprintf(b, "\n   %d. %s\n", i+1, ls[0].EntityName)
		fmt.Fprintf(b, "      👥 Asesores: %d (%s)\n", len(names), strings.Join(names, ", "))
		fmt.Fprintf(b, "      💰 Total comisiones: %s\n", FormatCOP(sumDecimal(ls, lineBase)))
		fmt.Fprintf(b, "      📈 Total créditos: %d\n", lo.SumBy(ls, lineCredits))
	}
}

// FileName follows comision_asesor_<id>_<periodo>_<ts>.txt for a single
// advisor and comisiones_completas_<periodo>_<ts>.txt otherwise.
func FileName(period string, advisorID *uint64, at time.Time) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(at.UTC().Format("2006-01-02T15:04:05.000Z"))
	if advisorID != nil {
		return fmt.Sprintf("comision_asesor_%d_%s_%s.txt", *advisorID, period, ts)
	}
	return fmt.Sprintf("comisiones_completas_%s_%s.txt", period, ts)
}
