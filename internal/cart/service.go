// Package cart implémente le panier par utilisateur : fusion des lignes
// identiques, quantités plancher à 1, total = Σ prix × quantité.
package cart

import (
	"context"
	"errors"

	"velora_back_end/internal/models"
	"velora_back_end/internal/pricing"
	"velora_back_end/internal/utils"
)

var (
	ErrNotAuthenticated = errors.New("utilisateur non authentifié")
	ErrInvalidQuantity  = errors.New("quantité invalide")
	ErrInvalidIndex     = errors.New("ligne de panier inexistante")
)

// Service : construit une fois par session et injecté explicitement,
// aucun état global caché.
type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// AddLineInput : paramètres d'un ajout au panier
type AddLineInput struct {
	Product       *models.Product
	Variant       *models.Variant
	Color         string
	Size          string
	Quantity      int
	PriceOverride *float64
	ColorLabel    string
}

// AddLine ajoute une ligne ou fusionne avec la ligne identique existante.
// La clé de fusion est (produit, couleur, taille, variantId) — les quatre.
// En cas de fusion, le prix est ÉCRASÉ par la résolution la plus récente,
// jamais moyenné. Retourne le panier mis à jour.
func (s *Service) AddLine(ctx context.Context, userID string, in AddLineInput) ([]models.CartItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	if in.Product == nil || in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	variantID := in.Color
	if in.Variant != nil && !in.Variant.ID.IsZero() {
		variantID = in.Variant.ID.Hex()
	}

	size := in.Variant.FindSize(in.Size)
	linePrice := pricing.ResolveLinePrice(in.PriceOverride, in.Product, size)

	items, err := s.Repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	productID := in.Product.ID.Hex()
	merged := false
	for i := range items {
		if items[i].ProductID == productID &&
			items[i].Color == in.Color &&
			items[i].Size == in.Size &&
			items[i].VariantID == variantID {
			items[i].Quantity += in.Quantity
			items[i].Price = linePrice
			merged = true
			break
		}
	}

	if !merged {
		image := in.Product.Image
		if in.Variant != nil && len(in.Variant.Images) > 0 {
			image = in.Variant.Images[0]
		}
		colorName := in.ColorLabel
		if colorName == "" {
			colorName = utils.ColorLabel(in.Color)
		}
		items = append(items, models.CartItem{
			ProductID:    productID,
			Name:         in.Product.Name,
			Price:        linePrice,
			Image:        image,
			Color:        in.Color,
			ColorName:    colorName,
			Size:         in.Size,
			Quantity:     in.Quantity,
			VariantID:    variantID,
			Category:     in.Product.Category,
			CategorySlug: in.Product.Subcategory,
			CategoryName: in.Product.Category,
		})
	}

	if err := s.Repo.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveLine supprime la ligne à l'index donné
func (s *Service) RemoveLine(ctx context.Context, userID string, index int) ([]models.CartItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	items, err := s.Repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, ErrInvalidIndex
	}

	items = append(items[:index], items[index+1:]...)
	if err := s.Repo.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity fixe la quantité d'une ligne, plancher à 1.
// Passer à zéro n'existe pas par ce chemin : supprimer la ligne est
// le seul moyen de la vider.
func (s *Service) SetQuantity(ctx context.Context, userID string, index, quantity int) ([]models.CartItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	items, err := s.Repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, ErrInvalidIndex
	}

	if quantity < 1 {
		quantity = 1
	}
	items[index].Quantity = quantity

	if err := s.Repo.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get retourne le panier de l'utilisateur
func (s *Service) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.Repo.Load(ctx, userID)
}

// Clear vide entièrement le panier (logout, commande validée)
func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return s.Repo.Clear(ctx, userID)
}

// Total : somme des prix × quantités, sans arrondi.
// L'arrondi à 2 décimales est un sujet d'affichage.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
