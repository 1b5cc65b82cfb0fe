package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/odyssey-erp/stockroom/internal/masterdata"
	"github.com/odyssey-erp/stockroom/internal/report"
)

func productCommands() map[string]command {
	return map[string]command{
		"products list":      {staff: true, usage: "", run: runProductsList},
		"products show":      {staff: true, usage: "<id>", run: runProductsShow},
		"products search":    {staff: true, usage: "<name>", run: runProductsSearch},
		"products category":  {staff: true, usage: "<category>", run: runProductsCategory},
		"products low-stock": {staff: true, usage: "", run: runProductsLowStock},
		"products add":       {usage: "-id N -name S -supplier N [-category S] [-description S] [-quantity N] [-reorder N] [-price F]", run: runProductsAdd},
		"products update":    {usage: "-id N [-name S] [-category S] [-description S] [-quantity N] [-reorder N] [-price F] [-supplier N]", run: runProductsUpdate},
		"products delete":    {usage: "<id>", run: runProductsDelete},
	}
}

type productFlags struct {
	id, supplier                int64
	name, category, description string
	quantity, reorder           int
	price                       float64
}

func bindProductFlags(fs *flag.FlagSet) *productFlags {
	pf := &productFlags{}
	fs.Int64Var(&pf.id, "id", 0, "product id")
	fs.StringVar(&pf.name, "name", "", "product name")
	fs.StringVar(&pf.category, "category", "", "category")
	fs.StringVar(&pf.description, "description", "", "description")
	fs.IntVar(&pf.quantity, "quantity", 0, "quantity in stock")
	fs.IntVar(&pf.reorder, "reorder", 0, "reorder level")
	fs.Float64Var(&pf.price, "price", 0, "unit price")
	fs.Int64Var(&pf.supplier, "supplier", 0, "supplier id")
	return pf
}

// apply copies the flags that were set onto p.
func (pf *productFlags) apply(p masterdata.Product, seen map[string]bool) masterdata.Product {
	if seen["name"] {
		p.Name = pf.name
	}
	if seen["category"] {
		p.Category = pf.category
	}
	if seen["description"] {
		p.Description = pf.description
	}
	if seen["quantity"] {
		p.QuantityInStock = pf.quantity
	}
	if seen["reorder"] {
		p.ReorderLevel = pf.reorder
	}
	if seen["price"] {
		p.UnitPrice = pf.price
	}
	if seen["supplier"] {
		p.SupplierID = pf.supplier
	}
	return p
}

func runProductsList(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return writeProducts(e.stdout, e.services.Catalog.Products())
}

func runProductsShow(e *env, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}
	p, err := e.services.Catalog.Product(id)
	if err != nil {
		return err
	}
	supplier := "-"
	if s, err := e.services.Catalog.Supplier(p.SupplierID); err == nil {
		supplier = s.Name
	}
	tw := newTable(e.stdout, "FIELD", "VALUE")
	fmt.Fprintf(tw, "ID\t%d\n", p.ID)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Category\t%s\n", p.Category)
	fmt.Fprintf(tw, "Description\t%s\n", p.Description)
	fmt.Fprintf(tw, "Quantity\t%d\n", p.QuantityInStock)
	fmt.Fprintf(tw, "Reorder level\t%d\n", p.ReorderLevel)
	fmt.Fprintf(tw, "Unit price\t%.2f\n", p.UnitPrice)
	fmt.Fprintf(tw, "Stock value\t%.2f\n", p.StockValue())
	fmt.Fprintf(tw, "Supplier\t%d (%s)\n", p.SupplierID, supplier)
	fmt.Fprintf(tw, "Status\t%s\n", stockStatus(p))
	return tw.Flush()
}

func runProductsSearch(e *env, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	return writeProducts(e.stdout, e.services.Catalog.Search(strings.Join(args, " ")))
}

func runProductsCategory(e *env, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	return writeProducts(e.stdout, e.services.Catalog.ByCategory(strings.Join(args, " ")))
}

func runProductsLowStock(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return writeProducts(e.stdout, report.LowStock(e.services.Catalog.Products()))
}

func runProductsAdd(e *env, args []string) error {
	fs := newFlags(e, "products add")
	pf := bindProductFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	p := pf.apply(masterdata.Product{ID: pf.id}, visited(fs))
	added, err := e.services.Catalog.AddProduct(e.ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Product %d added.\n", added.ID)
	return nil
}

func runProductsUpdate(e *env, args []string) error {
	fs := newFlags(e, "products update")
	pf := bindProductFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	seen := visited(fs)
	if !seen["id"] {
		return errUsage
	}
	current, err := e.services.Catalog.Product(pf.id)
	if err != nil {
		return err
	}
	updated, err := e.services.Catalog.UpdateProduct(e.ctx, pf.id, pf.apply(current, seen))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Product %d updated.\n", updated.ID)
	return nil
}

func runProductsDelete(e *env, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}
	if err := e.services.Catalog.DeleteProduct(e.ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Product %d deleted.\n", id)
	return nil
}

func writeProducts(w io.Writer, products []masterdata.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return nil
	}
	tw := newTable(w, "ID", "NAME", "CATEGORY", "QTY", "REORDER", "PRICE", "SUPPLIER", "STATUS")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.2f\t%d\t%s\n",
			p.ID, p.Name, p.Category, p.QuantityInStock, p.ReorderLevel, p.UnitPrice, p.SupplierID, stockStatus(p))
	}
	return tw.Flush()
}

func stockStatus(p masterdata.Product) string {
	if p.IsLowStock() {
		return "LOW"
	}
	return "OK"
}

func singleID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}
