// internal/catalog/store_test.go
package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/models"
)

var catalogColumns = []string{
	"ma_san_pham", "linh_vuc", "danh_muc", "ten", "mo_ta",
	"gia", "thuong_hieu", "loi_ich", "loi_khuyen", "danh_gia", "thuoc_tinh",
}

func TestStoreLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(catalogColumns).
		AddRow(1, "dien_tu", "dien_thoai", "iPhone 15", "Điện thoại cao cấp",
			"22.990.000", "Apple", "Chụp ảnh đẹp", "Phù hợp công việc", "4.8",
			[]byte(`{"mau_sac": ["đen", "trắng"], "bo_nho": "128GB"}`)).
		AddRow(2, "dien_tu", "dien_thoai", "Galaxy S24", "Flagship Samsung",
			"20.490.000", "Samsung", "Màn hình đẹp", "Đáng mua", "4.7",
			[]byte(`{"mau_sac": "tím", "pin": "4000mAh"}`))

	mock.ExpectQuery("SELECT (.+) FROM products ORDER BY ma_san_pham").WillReturnRows(rows)

	store := NewStore("products", logger.NewTestLogger(t))
	err = store.Load(context.Background(), db)
	require.NoError(t, err)

	products := store.Products()
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "iPhone 15", products[0].Name)
	assert.Equal(t, "128GB", products[0].Attributes["bo_nho"])
	assert.Equal(t, "tím", products[1].Attributes["mau_sac"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreLoadEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM products ORDER BY ma_san_pham").
		WillReturnRows(sqlmock.NewRows(catalogColumns))

	store := NewStore("products", logger.NewTestLogger(t))
	err = store.Load(context.Background(), db)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_EMPTY")
}

func TestStoreLoadMalformedAttributes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(catalogColumns).
		AddRow(7, "gia_dung", "noi_com", "Nồi cơm điện", "Nồi 1.8L",
			"1.200.000", "Sharp", "", "", "4.2", []byte(`{not json`))

	mock.ExpectQuery("SELECT (.+) FROM products ORDER BY ma_san_pham").WillReturnRows(rows)

	store := NewStore("products", logger.NewTestLogger(t))
	require.NoError(t, store.Load(context.Background(), db))

	products := store.Products()
	require.Len(t, products, 1)
	assert.Nil(t, products[0].Attributes)
}

func TestAttributeKeys(t *testing.T) {
	store := &Store{products: []models.Product{
		{ID: 1, Attributes: map[string]interface{}{"mau_sac": "đen", "pin": "4000mAh"}},
		{ID: 2, Attributes: map[string]interface{}{"mau_sac": "trắng", "bo_nho": "256GB"}},
	}}

	assert.Equal(t, []string{"bo_nho", "mau_sac", "pin"}, store.AttributeKeys())
}

func TestUnifiedProductText(t *testing.T) {
	p := models.Product{
		ID:       12,
		Domain:   "dien_tu",
		Category: "dien_thoai",
		Name:     "iPhone 15",
		Price:    "22.990.000",
		Brand:    "Apple",
		Attributes: map[string]interface{}{
			"mau_sac": []interface{}{"đen", "trắng"},
			"bo_nho":  "128GB",
		},
	}

	doc := UnifiedProductText(p)
	assert.Contains(t, doc, "ma_san_pham: 12")
	assert.Contains(t, doc, "ten: iPhone 15")
	assert.Contains(t, doc, "mau_sac: đen, trắng")
	assert.Contains(t, doc, "bo_nho: 128GB")
	assert.NotContains(t, doc, "mo_ta:")

	id, ok := ExtractProductID(doc)
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)
}

func TestExtractProductIDMissing(t *testing.T) {
	_, ok := ExtractProductID("ten: iPhone 15. gia: 22.990.000")
	assert.False(t, ok)
}
