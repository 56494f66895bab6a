package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shopstack/internal/apperr"
	"shopstack/internal/domain"
	"shopstack/internal/repos"
)

// CatalogService manages categories and products. Product price edits and
// deletions cascade into every cart holding the product, inside the same
// transaction as the catalog write.
type CatalogService struct {
	DB    *sqlx.DB
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Carts *repos.CartRepo
	Cart  *CartService
}

func NewCatalogService(db *sqlx.DB, cats *repos.CategoryRepo, prods *repos.ProductRepo,
	carts *repos.CartRepo, cart *CartService) *CatalogService {
	return &CatalogService{DB: db, Cats: cats, Prods: prods, Carts: carts, Cart: cart}
}

type PageRequest struct {
	PageNumber int
	PageSize   int
	SortBy     string
	SortOrder  string // asc | desc
}

func (pr PageRequest) limitOffset() (int, int) {
	return pr.PageSize, pr.PageNumber * pr.PageSize
}

// specialPrice derives the price actually charged after the percent discount.
func specialPrice(price, discount float64) float64 {
	return price - discount*0.01*price
}

// ---------- Categories ----------

func (s *CatalogService) GetAllCategories(pr PageRequest) (CategoryPage, error) {
	total, err := s.Cats.Count()
	if err != nil {
		return CategoryPage{}, err
	}
	if total == 0 {
		return CategoryPage{}, apperr.Business("No categories found")
	}

	limit, offset := pr.limitOffset()
	cats, err := s.Cats.ListPaged(repos.CategorySortCol(pr.SortBy), pr.SortOrder, limit, offset)
	if err != nil {
		return CategoryPage{}, err
	}

	content := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		content = append(content, categoryView(c))
	}
	pages := totalPages(total, pr.PageSize)
	return CategoryPage{
		Content:       content,
		PageNumber:    pr.PageNumber,
		PageSize:      pr.PageSize,
		TotalElements: total,
		TotalPages:    pages,
		LastPage:      pr.PageNumber >= pages-1,
	}, nil
}

func (s *CatalogService) CreateCategory(name string) (CategoryView, error) {
	if _, err := s.Cats.ByName(name); err == nil {
		return CategoryView{}, apperr.Business("Category with the name %s already exists", name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return CategoryView{}, err
	}

	c := domain.Category{ID: uuid.NewString(), Name: name}
	if err := s.Cats.Insert(c); err != nil {
		return CategoryView{}, err
	}
	return categoryView(c), nil
}

func (s *CatalogService) UpdateCategory(id, name string) (CategoryView, error) {
	c, err := s.Cats.ByID(s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return CategoryView{}, apperr.NotFound("Category", "categoryId", id)
	}
	if err != nil {
		return CategoryView{}, err
	}
	c.Name = name
	if err := s.Cats.UpdateName(c.ID, name); err != nil {
		return CategoryView{}, err
	}
	return categoryView(c), nil
}

func (s *CatalogService) DeleteCategory(id string) (CategoryView, error) {
	c, err := s.Cats.ByID(s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return CategoryView{}, apperr.NotFound("Category", "categoryId", id)
	}
	if err != nil {
		return CategoryView{}, err
	}
	if err := s.Cats.Delete(id); err != nil {
		return CategoryView{}, err
	}
	return categoryView(c), nil
}

// ---------- Products ----------

type ProductInput struct {
	ProductName string  `json:"productName"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

func (s *CatalogService) AddProduct(categoryID string, in ProductInput) (ProductView, error) {
	if _, err := s.Cats.ByID(s.DB, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductView{}, apperr.NotFound("Category", "categoryId", categoryID)
		}
		return ProductView{}, err
	}

	exists, err := s.Prods.NameExistsInCategory(categoryID, in.ProductName)
	if err != nil {
		return ProductView{}, err
	}
	if exists {
		return ProductView{}, apperr.Business("Product %s already exists", in.ProductName)
	}

	p := domain.Product{
		ID:           uuid.NewString(),
		CategoryID:   categoryID,
		Name:         in.ProductName,
		Description:  in.Description,
		Image:        "default.png",
		Quantity:     in.Quantity,
		Price:        in.Price,
		Discount:     in.Discount,
		SpecialPrice: specialPrice(in.Price, in.Discount),
	}
	if err := s.Prods.Insert(s.DB, p); err != nil {
		return ProductView{}, err
	}
	return productView(p), nil
}

func (s *CatalogService) GetAllProducts(pr PageRequest) (ProductPage, error) {
	total, err := s.Prods.Count()
	if err != nil {
		return ProductPage{}, err
	}
	if total == 0 {
		return ProductPage{}, apperr.Business("No products found")
	}
	limit, offset := pr.limitOffset()
	prods, err := s.Prods.ListPaged(repos.ProductSortCol(pr.SortBy), pr.SortOrder, limit, offset)
	if err != nil {
		return ProductPage{}, err
	}
	return s.productPage(prods, total, pr), nil
}

func (s *CatalogService) SearchByCategory(categoryID string, pr PageRequest) (ProductPage, error) {
	cat, err := s.Cats.ByID(s.DB, categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductPage{}, apperr.NotFound("Category", "categoryId", categoryID)
	}
	if err != nil {
		return ProductPage{}, err
	}

	total, err := s.Prods.CountByCategory(categoryID)
	if err != nil {
		return ProductPage{}, err
	}
	if total == 0 {
		return ProductPage{}, apperr.Business("%s category does not have any products", cat.Name)
	}
	limit, offset := pr.limitOffset()
	prods, err := s.Prods.ListByCategoryPaged(categoryID, repos.ProductSortCol(pr.SortBy), pr.SortOrder, limit, offset)
	if err != nil {
		return ProductPage{}, err
	}
	return s.productPage(prods, total, pr), nil
}

func (s *CatalogService) SearchByKeyword(keyword string, pr PageRequest) (ProductPage, error) {
	total, err := s.Prods.CountByName(keyword)
	if err != nil {
		return ProductPage{}, err
	}
	if total == 0 {
		return ProductPage{}, apperr.Business("No products found with keyword %s", keyword)
	}
	limit, offset := pr.limitOffset()
	prods, err := s.Prods.SearchByName(keyword, repos.ProductSortCol(pr.SortBy), pr.SortOrder, limit, offset)
	if err != nil {
		return ProductPage{}, err
	}
	return s.productPage(prods, total, pr), nil
}

// UpdateProduct recomputes the special price and re-prices the matching line
// in every cart holding the product, all in one transaction.
func (s *CatalogService) UpdateProduct(id string, in ProductInput) (ProductView, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return ProductView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := s.Prods.Get(tx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductView{}, apperr.NotFound("Product", "productId", id)
	}
	if err != nil {
		return ProductView{}, err
	}

	p.Name = in.ProductName
	p.Description = in.Description
	p.Quantity = in.Quantity
	p.Price = in.Price
	p.Discount = in.Discount
	p.SpecialPrice = specialPrice(in.Price, in.Discount)
	if err := s.Prods.Update(tx, p); err != nil {
		return ProductView{}, err
	}

	cartIDs, err := s.Carts.CartIDsWithProduct(tx, id)
	if err != nil {
		return ProductView{}, err
	}
	for _, cid := range cartIDs {
		if err := s.Cart.repriceItem(tx, cid, id); err != nil {
			return ProductView{}, err
		}
	}

	return productView(p), tx.Commit()
}

// DeleteProduct removes the product from every cart referencing it (reducing
// each cart's total) before deleting the catalog row.
func (s *CatalogService) DeleteProduct(id string) (ProductView, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return ProductView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := s.Prods.Get(tx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductView{}, apperr.NotFound("Product", "productId", id)
	}
	if err != nil {
		return ProductView{}, err
	}

	cartIDs, err := s.Carts.CartIDsWithProduct(tx, id)
	if err != nil {
		return ProductView{}, err
	}
	for _, cid := range cartIDs {
		item, err := s.Carts.Item(tx, cid, id)
		if err != nil {
			return ProductView{}, err
		}
		if err := s.Cart.removeItem(tx, cid, item); err != nil {
			return ProductView{}, err
		}
	}

	if err := s.Prods.Delete(tx, id); err != nil {
		return ProductView{}, err
	}
	return productView(p), tx.Commit()
}

func (s *CatalogService) productPage(prods []domain.Product, total int64, pr PageRequest) ProductPage {
	content := make([]ProductView, 0, len(prods))
	for _, p := range prods {
		content = append(content, productView(p))
	}
	pages := totalPages(total, pr.PageSize)
	return ProductPage{
		Content:       content,
		PageNumber:    pr.PageNumber,
		PageSize:      pr.PageSize,
		TotalElements: total,
		TotalPages:    pages,
		LastPage:      pr.PageNumber >= pages-1,
	}
}
