package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appshoe "github.com/xiebiao/shoestock/internal/application/shoe"
	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/file"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence/storagetest"
)

// run 用给定输入运行菜单，返回输出和仓储
func run(t *testing.T, seed shoe.Collection, input ...string) (string, *file.Repository) {
	t.Helper()
	ctx := context.Background()

	repo := file.NewRepository(afero.NewMemMapFs(), "inventory.txt", zap.NewNop())
	if seed != nil {
		require.NoError(t, repo.Save(ctx, seed))
	}

	var out bytes.Buffer
	menu := NewMenu(appshoe.NewSession(repo, zap.NewNop()), strings.NewReader(strings.Join(input, "\n")+"\n"), &out)
	require.NoError(t, menu.Run(ctx))
	return out.String(), repo
}

func TestMenu_ExitAndInvalidChoice(t *testing.T) {
	out, _ := run(t, nil, "9", "", "7")
	assert.Contains(t, out, "Inventory is empty (file backend).")
	assert.Contains(t, out, "Invalid choice! Please try again.")
	assert.Contains(t, out, "Thank you for using the Shoe Inventory System!")
}

func TestMenu_EOFEndsLoop(t *testing.T) {
	out, _ := run(t, nil, "2")
	assert.Contains(t, out, "No shoes in inventory!")
	assert.NotContains(t, out, "Thank you")
}

func TestMenu_AddShoeRepromptsUntilValid(t *testing.T) {
	out, repo := run(t, nil,
		"1",
		"", "US", // 空国家重新输入
		"A",
		"Air Max",
		"abc",      // 无效单价
		"10", "-1", // 负数量
		"12.5", "3",
		"",
		"7",
	)
	assert.Contains(t, out, "Country cannot be empty!")
	assert.Contains(t, out, "Invalid cost! Please enter a valid number.")
	assert.Contains(t, out, "Cost and quantity cannot be negative!")
	assert.Contains(t, out, "Shoe added successfully!")

	res, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shoe.Collection{{Country: "US", Code: "A", Product: "Air Max", Cost: 12.5, Quantity: 3}}, res.Shoes)
}

func TestMenu_ViewAllRendersTable(t *testing.T) {
	out, _ := run(t, storagetest.Sample(), "2", "", "7")
	assert.Contains(t, out, "Inventory data loaded successfully!")
	assert.Contains(t, out, "Inventory List:")
	assert.Contains(t, out, "Stan Smith")
	assert.Contains(t, out, "89.99")
}

func TestMenu_Restock(t *testing.T) {
	out, repo := run(t, storagetest.Sample(), "3", "yes", "x", "-4", "6", "", "7")
	assert.Contains(t, out, "Shoe with lowest quantity:\nVN,D,Chuck 70,0.1,0")
	assert.Contains(t, out, "Invalid quantity!")
	assert.Contains(t, out, "Quantity cannot be negative!")
	assert.Contains(t, out, "Stock updated successfully!")

	res, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Shoes[3].Quantity)
}

func TestMenu_RestockDeclined(t *testing.T) {
	out, repo := run(t, storagetest.Sample(), "3", "no", "", "7")
	assert.NotContains(t, out, "Stock updated successfully!")

	res, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storagetest.Sample(), res.Shoes)
}

func TestMenu_SearchValueHighest(t *testing.T) {
	out, _ := run(t, storagetest.Sample(),
		"4", "B", "",
		"4", "nope", "",
		"4", "  ", "",
		"5", "",
		"6", "",
		"7",
	)
	assert.Contains(t, out, "Found shoe:\nFR,B,Stan Smith,89.99,2")
	assert.Contains(t, out, "Shoe not found!")
	assert.Contains(t, out, "Code cannot be empty!")
	assert.Contains(t, out, "Value per item:")
	assert.Contains(t, out, "779.98")
	assert.Contains(t, out, "Shoe with highest quantity (For Sale):\nDE,C,Superstar,0,9")
}

func TestMenu_SkippedLinesReported(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "inventory.txt", []byte(shoe.FileHeader+"\nUS,A,Air,1,1\nbad,line\n"), 0o644))

	var out bytes.Buffer
	menu := NewMenu(appshoe.NewSession(file.NewRepository(fs, "inventory.txt", zap.NewNop()), zap.NewNop()), strings.NewReader("7\n"), &out)
	require.NoError(t, menu.Run(context.Background()))
	assert.Contains(t, out.String(), "Skipping invalid line 3: bad,line")
}
