package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterByName(t *testing.T) {
	products := []models.Product{{ID: "1", Name: "Red Mug"}, {ID: "2", Name: "Blue Cup"}}

	assert.Equal(t, []string{"Red Mug"}, names(services.FilterByName(products, "mug")))
	assert.Equal(t, []string{"Red Mug"}, names(services.FilterByName(products, "RED m")))
	assert.Equal(t, []string{"Red Mug", "Blue Cup"}, names(services.FilterByName(products, "")))
	assert.Empty(t, services.FilterByName(products, "plate"))
}

func TestFilterByName_MatchesNameOnly(t *testing.T) {
	products := []models.Product{{ID: "1", Name: "Lamp", Description: "a mug-shaped lamp", CategoryID: "mugs"}}
	assert.Empty(t, services.FilterByName(products, "mug"))
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	mockRepo.On("GetAll").Return([]models.Product{{Name: "Red Mug"}, {Name: "Blue Cup"}}, nil).Once()
	assert.Equal(t, []string{"Blue Cup"}, names(service.ListProducts(context.Background(), "cup")))

	// Fetch failures degrade to an empty list.
	mockRepo.On("GetAll").Return(nil, fmt.Errorf("store unavailable")).Once()
	products := service.ListProducts(context.Background(), "")
	assert.NotNil(t, products)
	assert.Empty(t, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	expected := &models.Product{ID: "1", Name: "Product A"}
	mockRepo.On("GetByID", "1").Return(expected, nil).Once()
	product, err := service.GetProductByID(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 not found")).Once()
	product, err = service.GetProductByID(context.Background(), "99")
	assert.Error(t, err)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestRemoveFromList(t *testing.T) {
	list := []models.Product{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"}}

	assert.Equal(t, []string{"A", "C"}, names(services.RemoveFromList(list, "2")))
	assert.Len(t, services.RemoveFromList(list, "missing"), 3)
	assert.Len(t, list, 3)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil)

	mockRepo.On("Delete", "1").Return(nil).Once()
	publisher.On("Publish", "", "catalog_events", mock.MatchedBy(func(body []byte) bool {
		var event services.ProductEvent
		return json.Unmarshal(body, &event) == nil && event.Type == services.EventProductDeleted && event.ProductID == "1"
	})).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(context.Background(), "1"))

	mockRepo.On("Delete", "99").Return(fmt.Errorf("product with ID 99 not found for deletion")).Once()
	err := service.DeleteProduct(context.Background(), "99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")
	assert.False(t, service.IsDeleting("99"))

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_DeleteProductRefusesConcurrentDelete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	mockRepo.On("Delete", "1").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, service.DeleteProduct(context.Background(), "1"))
	}()

	<-started
	assert.True(t, service.IsDeleting("1"))
	assert.ErrorIs(t, service.DeleteProduct(context.Background(), "1"), services.ErrDeleteInProgress)

	close(release)
	wg.Wait()
	assert.False(t, service.IsDeleting("1"))
	mockRepo.AssertExpectations(t)
}

func TestProductService_SaveProductCreates(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil)

	form := models.ProductForm{
		Name:             "Red Mug",
		Price:            9.5,
		CategoryID:       "kitchen",
		MainImage:        "data:image/png;base64,AAA=",
		AdditionalImages: []string{"img-1", "img-2"},
	}

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "" &&
			p.Name == "Red Mug" &&
			*p.Price == 9.5 &&
			p.MainMedia != nil && p.MainMedia.Image == "data:image/png;base64,AAA=" &&
			len(p.MediaItems) == 2 && p.MediaItems[1].Image == "img-2"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Product).ID = "new-id"
	}).Return(nil).Once()
	publisher.On("Publish", "", "catalog_events", mock.Anything).Return(errors.New("broker down")).Once()

	product, err := service.SaveProduct(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "new-id", product.ID)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_SaveProductUpdates(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	form := models.ProductForm{ID: "p-1", Name: "Blue Cup", Price: 4, CategoryID: "kitchen"}
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "p-1" && p.MainMedia == nil && len(p.MediaItems) == 0
	})).Return(nil).Once()

	product, err := service.SaveProduct(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "p-1", product.ID)
	mockRepo.AssertExpectations(t)
}

func TestProductService_SaveProductStoreFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	mockRepo.On("Update", mock.Anything).Return(fmt.Errorf("database error")).Once()
	_, err := service.SaveProduct(context.Background(), models.ProductForm{ID: "p-1", Name: "A", Price: 1, CategoryID: "c"})
	assert.ErrorContains(t, err, "database error")
	assert.False(t, errors.Is(err, services.ErrValidation))
	mockRepo.AssertExpectations(t)
}

func TestProductService_SaveProductRequiresFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	cases := []struct {
		name    string
		form    models.ProductForm
		missing []string
	}{
		{"empty name", models.ProductForm{Price: 3, CategoryID: "c"}, []string{"Name"}},
		{"zero price", models.ProductForm{Name: "Free sample", CategoryID: "c"}, []string{"Price"}},
		{"no category", models.ProductForm{Name: "Mug", Price: 3}, []string{"CategoryID"}},
		{"everything", models.ProductForm{}, []string{"Name", "Price", "CategoryID"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.SaveProduct(context.Background(), tc.form)
			require.Error(t, err)
			assert.True(t, errors.Is(err, services.ErrValidation))

			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.missing, verr.Fields)
		})
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_LoadForm(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)
	price := 12.0

	mockRepo.On("GetByID", "p-1").Return(&models.Product{
		ID:         "p-1",
		Name:       "Red Mug",
		Price:      &price,
		CategoryID: "kitchen",
		MainMedia:  &models.MediaItem{Image: "main"},
		MediaItems: []models.MediaItem{{Image: "a"}, {Image: "b"}},
		CreatedAt:  time.Now(),
	}, nil).Once()
	mockRepo.On("GetByID", "gone").Return(nil, errors.New("not found")).Once()

	form, err := service.LoadForm(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, models.ProductForm{
		ID:               "p-1",
		Name:             "Red Mug",
		Price:            12,
		CategoryID:       "kitchen",
		MainImage:        "main",
		AdditionalImages: []string{"a", "b"},
	}, form)

	form, err = service.LoadForm(context.Background(), "gone")
	assert.Error(t, err)
	assert.Empty(t, form.Name)
	mockRepo.AssertExpectations(t)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"12.5":    12.5,
		" 3 ":     3,
		"abc":     0,
		"":        0,
		"7.25usd": 7.25,
		".5":      0.5,
		"-2":      -2,
		"1e3":     1000,
		"1e999":   0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, services.ParsePrice(raw), "input %q", raw)
	}
}

func TestNonNumericPriceIsCoercedThenRejectedAsMissing(t *testing.T) {
	service := services.NewProductService(new(MockProductRepository), nil, nil)

	form := models.ProductForm{Name: "Mug", Price: services.ParsePrice("twelve"), CategoryID: "kitchen"}
	assert.Equal(t, 0.0, form.Price)

	err := service.Validate(form)
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Price"}, verr.Fields)
}
