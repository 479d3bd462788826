// Package cli 交互式文本菜单
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	appshoe "github.com/xiebiao/shoestock/internal/application/shoe"
	"github.com/xiebiao/shoestock/internal/domain/shoe"
	apperrors "github.com/xiebiao/shoestock/pkg/errors"
)

// errInputClosed 输入结束（EOF），菜单循环正常退出
var errInputClosed = errors.New("input closed")

// Menu 菜单循环
// 1. 启动时加载一次库存，之后在内存中操作
// 2. 每个操作的错误都在本轮报告，不会中断循环
// 3. 输入EOF时退出
type Menu struct {
	session *appshoe.Session
	in      *bufio.Scanner
	out     io.Writer
}

// NewMenu 创建菜单
func NewMenu(session *appshoe.Session, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run 运行菜单直到选择退出或输入结束
func (m *Menu) Run(ctx context.Context) error {
	m.open(ctx)

	for {
		m.printMenu()
		choice, err := m.prompt("\nEnter your choice (1-7): ")
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.addShoe(ctx)
		case "2":
			m.viewAll()
		case "3":
			err = m.restock(ctx)
		case "4":
			err = m.search()
		case "5":
			m.valuePerItem()
		case "6":
			m.highest()
		case "7":
			m.println("Thank you for using the Shoe Inventory System!")
			return nil
		default:
			m.println("Invalid choice! Please try again.")
		}
		if errors.Is(err, errInputClosed) {
			return nil
		}

		if _, err := m.prompt("\nPress Enter to continue..."); err != nil {
			return nil
		}
	}
}

func (m *Menu) open(ctx context.Context) {
	if err := m.session.Open(ctx); err != nil {
		m.println(apperrors.Message(err))
		return
	}
	for _, s := range m.session.Skipped() {
		m.printf("Skipping invalid line %d: %s\n", s.Number, s.Line)
	}
	if shoe.IsEmpty(m.session.Shoes()) {
		m.printf("Inventory is empty (%s backend).\n", m.session.Backend())
		return
	}
	m.println("Inventory data loaded successfully!")
}

func (m *Menu) printMenu() {
	m.println("\n=== Shoe Inventory Management System ===")
	m.println("1. Add new shoe")
	m.println("2. View all shoes")
	m.println("3. Restock shoes")
	m.println("4. Search shoe")
	m.println("5. Calculate value per item")
	m.println("6. View shoe with highest quantity")
	m.println("7. Exit")
}

// =========================================
// 菜单操作
// =========================================

func (m *Menu) addShoe(ctx context.Context) error {
	country, err := m.promptRequired("Enter country: ", shoe.ErrEmptyCountry)
	if err != nil {
		return err
	}
	code, err := m.promptRequired("Enter shoe code: ", shoe.ErrEmptyCode)
	if err != nil {
		return err
	}
	product, err := m.promptRequired("Enter product name: ", shoe.ErrEmptyProduct)
	if err != nil {
		return err
	}

	// 单价和数量任一无效时两项都重新输入
	var (
		cost     float64
		quantity int
	)
	for {
		raw, err := m.prompt("Enter cost: ")
		if err != nil {
			return err
		}
		if cost, err = shoe.ParseCost(raw); err != nil {
			m.println(apperrors.Message(err))
			continue
		}
		raw, err = m.prompt("Enter quantity: ")
		if err != nil {
			return err
		}
		if quantity, err = shoe.ParseQuantity(raw); err != nil {
			m.println(apperrors.Message(err))
			continue
		}
		break
	}

	s, err := shoe.NewFromValues(country, code, product, cost, quantity)
	if err != nil {
		m.println(apperrors.Message(err))
		return nil
	}
	if err := m.session.Add(ctx, s); err != nil {
		m.println(apperrors.Message(err))
		return nil
	}
	m.println("Shoe added successfully!")
	return nil
}

func (m *Menu) viewAll() {
	shoes := m.session.Shoes()
	if shoe.IsEmpty(shoes) {
		m.println(apperrors.Message(shoe.ErrEmptyInventory))
		return
	}

	m.println("\nInventory List:")
	table := tablewriter.NewWriter(m.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Country", "Code", "Product", "Cost", "Quantity"})
	for _, s := range shoes {
		table.Append([]string{s.Country, s.Code, s.Product, fmt.Sprintf("%.2f", s.Cost), fmt.Sprintf("%d", s.Quantity)})
	}
	table.Render()
}

func (m *Menu) restock(ctx context.Context) error {
	lowest, err := m.session.Lowest()
	if err != nil {
		m.println(apperrors.Message(err))
		return nil
	}
	m.printf("\nShoe with lowest quantity:\n%s\n", lowest)

	answer, err := m.prompt("Would you like to restock this shoe? (yes/no): ")
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		return nil
	}

	var delta int
	for {
		raw, err := m.prompt("Enter quantity to add: ")
		if err != nil {
			return err
		}
		if delta, err = shoe.ParseDelta(raw); err != nil {
			m.println(apperrors.Message(err))
			continue
		}
		break
	}

	if _, err := m.session.Restock(ctx, lowest.Code, delta); err != nil {
		m.println(apperrors.Message(err))
		return nil
	}
	m.println("Stock updated successfully!")
	return nil
}

func (m *Menu) search() error {
	if shoe.IsEmpty(m.session.Shoes()) {
		m.println(apperrors.Message(shoe.ErrEmptyInventory))
		return nil
	}

	raw, err := m.prompt("Enter shoe code to search: ")
	if err != nil {
		return err
	}
	code, err := shoe.ValidateCode(raw)
	if err != nil {
		m.println(apperrors.Message(err))
		return nil
	}

	found, err := m.session.Search(code)
	if err != nil {
		m.println(apperrors.Message(err))
		return nil
	}
	m.printf("\nFound shoe:\n%s\n", found)
	return nil
}

func (m *Menu) valuePerItem() {
	report, err := m.session.ValuePerItem()
	if err != nil {
		m.println(apperrors.Message(err))
		return
	}

	m.println("\nValue per item:")
	table := tablewriter.NewWriter(m.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Product", "Value"})
	for _, item := range report.Items {
		table.Append([]string{item.Product, fmt.Sprintf("%.2f", item.Value)})
	}
	table.SetFooter([]string{"Total", fmt.Sprintf("%.2f", report.Total)})
	table.Render()
}

func (m *Menu) highest() {
	highest, err := m.session.Highest()
	if err != nil {
		m.println(apperrors.Message(err))
		return
	}
	m.printf("\nShoe with highest quantity (For Sale):\n%s\n", highest)
}

// =========================================
// 输入输出
// =========================================

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		m.println("")
		return "", errInputClosed
	}
	return m.in.Text(), nil
}

// promptRequired 空输入时提示并重新输入
func (m *Menu) promptRequired(label string, emptyErr error) (string, error) {
	for {
		v, err := m.prompt(label)
		if err != nil {
			return "", err
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
		m.println(apperrors.Message(emptyErr))
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}
