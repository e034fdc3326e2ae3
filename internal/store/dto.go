package store

import "github.com/bekzatm/tezdeliver/internal/user"

// List and detail views are distinct projections: the list keeps payloads
// small (no description, contacts or products), the detail nests everything
// the storefront page needs.

type CategoryDTO struct {
	CategoryName string `json:"category_name"`
}

type ProductDTO struct {
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	Price        int64  `json:"price"`
	Description  string `json:"description"`
}

type ComboDTO struct {
	ComboName   string `json:"combo_name"`
	ComboImage  string `json:"combo_image"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type ContactDTO struct {
	ContactInfo string `json:"contact_info"`
}

type ReviewDTO struct {
	Store   string      `json:"store"`
	Comment string      `json:"comment"`
	Client  user.Simple `json:"client"`
	Rating  int         `json:"rating"`
}

type ListItem struct {
	ID             string        `json:"id"`
	StoreName      string        `json:"store_name"`
	StoreImage     string        `json:"store_image"`
	Category       CategoryDTO   `json:"category"`
	AvgRating      float64       `json:"avg_rating"`
	CountPeople    ReviewerCount `json:"count_people"`
	CountGoodGrade string        `json:"count_good_grade"`
}

type DetailView struct {
	ID          string       `json:"id"`
	StoreName   string       `json:"store_name"`
	StoreImage  string       `json:"store_image"`
	Category    CategoryDTO  `json:"category"`
	Description string       `json:"description"`
	Address     string       `json:"address"`
	Owner       user.Simple  `json:"owner"`
	Products    []ProductDTO `json:"products"`
	Combos      []ComboDTO   `json:"combos"`
	ContactInfo []ContactDTO `json:"contact_info"`
	Reviews     []ReviewDTO  `json:"store_reviews"`
}

// ListRow is a store joined with its category name, as the listing query
// returns it.
type ListRow struct {
	Store
	CategoryName string
}

// ReviewRow is a review joined with the reviewing client's simple
// projection.
type ReviewRow struct {
	Review
	Client user.Simple
}

// Detail bundles everything the detail projection nests.
type Detail struct {
	Store        Store
	CategoryName string
	Owner        user.Simple
	Products     []Product
	Combos       []ProductCombo
	Contacts     []ContactInfo
	Reviews      []ReviewRow
}

func NewListItem(row ListRow, ratings []int) ListItem {
	return ListItem{
		ID:             row.ID,
		StoreName:      row.Name,
		StoreImage:     row.Image,
		Category:       CategoryDTO{CategoryName: row.CategoryName},
		AvgRating:      AverageRating(ratings),
		CountPeople:    ReviewerCount(len(ratings)),
		CountGoodGrade: GoodReviewPercentage(ratings),
	}
}

func NewDetailView(d *Detail) DetailView {
	v := DetailView{
		ID:          d.Store.ID,
		StoreName:   d.Store.Name,
		StoreImage:  d.Store.Image,
		Category:    CategoryDTO{CategoryName: d.CategoryName},
		Description: d.Store.Description,
		Address:     d.Store.Address,
		Owner:       d.Owner,
		Products:    make([]ProductDTO, 0, len(d.Products)),
		Combos:      make([]ComboDTO, 0, len(d.Combos)),
		ContactInfo: make([]ContactDTO, 0, len(d.Contacts)),
		Reviews:     make([]ReviewDTO, 0, len(d.Reviews)),
	}
	for _, p := range d.Products {
		v.Products = append(v.Products, ProductDTO{
			ProductName: p.Name, ProductImage: p.Image, Price: p.Price, Description: p.Description,
		})
	}
	for _, c := range d.Combos {
		v.Combos = append(v.Combos, ComboDTO{
			ComboName: c.Name, ComboImage: c.Image, Price: c.Price, Description: c.Description,
		})
	}
	for _, c := range d.Contacts {
		v.ContactInfo = append(v.ContactInfo, ContactDTO{ContactInfo: c.Phone})
	}
	for _, r := range d.Reviews {
		v.Reviews = append(v.Reviews, ReviewDTO{
			Store: r.StoreID, Comment: r.Comment, Client: r.Client, Rating: r.Rating,
		})
	}
	return v
}
