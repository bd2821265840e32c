package product

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

// Update applies a partial update: fields absent from upd keep their stored
// value. Offer and offered price are out of scope here; they only change
// together through ApplyOffer.
func (s *Service) Update(id int, upd Update) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.InCart != nil {
		p.InCart = *upd.InCart
	}

	return s.repo.Update(id, p)
}

// ApplyOffer replaces the product's offer descriptor and recomputes the
// offered price from the current base price. Both are persisted in one write.
func (s *Service) ApplyOffer(id int, offer Offer) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}

	offeredPrice := ComputeOfferedPrice(p.Price, &offer)
	return s.repo.SetOffer(id, &offer, offeredPrice)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
