package models

type Category struct {
	ID   int64  `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name" validate:"required"`
}

func (Category) CollectionName() string {
	return "categories"
}

type Product struct {
	ID          int64  `bson:"_id" json:"id"`
	CategoryID  int64  `bson:"category_id" json:"category_id" validate:"required"`
	Name        string `bson:"name" json:"name" validate:"required"`
	Description string `bson:"description" json:"description"`
	Price       Money  `bson:"price" json:"price"`
	ImageURL    string `bson:"image_url" json:"image_url"`
}

func (Product) CollectionName() string {
	return "products"
}
