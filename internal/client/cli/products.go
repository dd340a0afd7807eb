package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/vibecart/internal/client/client"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/client/services"
)

// showFailure prints field-level details carried by err before it is
// returned to the REPL.
func (a *App) showFailure(err error) error {
	var f *services.Failure
	if errors.As(err, &f) {
		a.render.FieldErrors(f.Errors)
	}
	return err
}

func usage(s string) error {
	return errors.New("Usage: " + s)
}

func (a *App) Products(ctx context.Context) error {
	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}
	a.render.Products(products)
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("product <id>")
	}
	p, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	a.render.Product(p)
	if l, ok := a.cart.Cart().Line(p.ID); ok {
		a.println(fmt.Sprintf("\n  in your cart: %d", l.Quantity))
	}
	return nil
}

func (a *App) Mine(ctx context.Context) error {
	products, err := a.catalog.Mine(ctx)
	if err != nil {
		return err
	}
	a.render.SellerProducts(products)
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.dashboard.Load(ctx)
	if err != nil {
		return err
	}
	a.render.Dashboard(d.Stats, d.Products)
	return nil
}

// promptProduct fills in a product form starting from in.
func (a *App) promptProduct(ctx context.Context, in models.ProductInput) (models.ProductInput, error) {
	var err error
	if in.Name, err = GetTextDefault(a.reader, "Product name", in.Name, a.out); err != nil {
		return in, err
	}
	desc, err := GetMultiline(a.reader, "Description (leave empty to keep the current one)", a.out)
	if err != nil {
		return in, err
	}
	if desc != "" {
		in.Description = desc
	}
	if in.Price, err = GetNumber(a.reader, "Price", in.Price, a.out); err != nil {
		return in, err
	}
	if in.Category, err = GetTextDefault(a.reader, "Category", in.Category, a.out); err != nil {
		return in, err
	}
	if in.Stock, err = GetInt(a.reader, "Stock", in.Stock, a.out); err != nil {
		return in, err
	}
	if in.IsPublic, err = GetBool(a.reader, "Visible to shoppers", in.IsPublic, a.out); err != nil {
		return in, err
	}

	refs, err := getSimpleText(a.reader, "Images: local files or URLs, space separated (empty keeps current)", a.out)
	if err != nil {
		return in, err
	}
	if refs != "" {
		images, err := a.collectImages(ctx, strings.Fields(refs))
		if err != nil {
			return in, err
		}
		in.Images = images
		in.Image = images[0]
	}
	return in, nil
}

// collectImages uploads every ref that names a local file and keeps the
// rest as given.
func (a *App) collectImages(ctx context.Context, refs []string) ([]string, error) {
	var (
		files []client.UploadFile
		slots []int
	)
	out := make([]string, len(refs))
	for i, ref := range refs {
		data, err := os.ReadFile(ref)
		if err != nil {
			out[i] = ref
			continue
		}
		files = append(files, services.NewUploadFile(ref, data))
		slots = append(slots, i)
	}
	if len(files) == 0 {
		return out, nil
	}

	urls, err := a.uploads.UploadMultiple(ctx, files, services.DefaultMaxFiles)
	if err != nil {
		return nil, err
	}
	for i, slot := range slots {
		if i < len(urls) {
			out[slot] = urls[i]
		}
	}
	return out, nil
}

func (a *App) AddProduct(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	in, err := a.promptProduct(ctx, models.ProductInput{IsPublic: true})
	if err != nil {
		return a.showFailure(err)
	}
	p, err := a.catalog.Create(ctx, in)
	if err != nil {
		return a.showFailure(err)
	}
	a.println(fmt.Sprintf("Product created: %s (%s)", p.Name, p.ID))
	return nil
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("editproduct <id>")
	}
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	current, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	in, err := a.promptProduct(ctx, models.InputFrom(*current))
	if err != nil {
		return a.showFailure(err)
	}
	if _, err := a.catalog.Update(ctx, current.ID, in); err != nil {
		return a.showFailure(err)
	}
	a.println("Product updated successfully!")
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("deleteproduct <id>")
	}
	ok, err := GetConfirm(a.reader, "Are you sure you want to delete this product?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.catalog.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.println("Product deleted.")
	return nil
}

// Upload sends local image files and prints the URLs to use on a product.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("upload <path>...")
	}
	files := make([]client.UploadFile, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, services.NewUploadFile(path, data))
	}

	var urls []string
	if len(files) == 1 {
		url, err := a.uploads.UploadSingle(ctx, files[0])
		if err != nil {
			return err
		}
		urls = []string{url}
	} else {
		var err error
		if urls, err = a.uploads.UploadMultiple(ctx, files, services.DefaultMaxFiles); err != nil {
			return err
		}
	}
	for _, u := range urls {
		a.println(u)
	}
	return nil
}
