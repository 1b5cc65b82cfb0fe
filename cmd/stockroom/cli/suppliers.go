package cli

import (
	"flag"
	"fmt"

	"github.com/odyssey-erp/stockroom/internal/masterdata"
)

func supplierCommands() map[string]command {
	return map[string]command{
		"suppliers list":   {usage: "", run: runSuppliersList},
		"suppliers add":    {usage: "-id N -name S [-phone S] [-email S] [-address S]", run: runSuppliersAdd},
		"suppliers update": {usage: "-id N [-name S] [-phone S] [-email S] [-address S]", run: runSuppliersUpdate},
		"suppliers delete": {usage: "<id>", run: runSuppliersDelete},
	}
}

type supplierFlags struct {
	id                          int64
	name, phone, email, address string
}

func bindSupplierFlags(fs *flag.FlagSet) *supplierFlags {
	sf := &supplierFlags{}
	fs.Int64Var(&sf.id, "id", 0, "supplier id")
	fs.StringVar(&sf.name, "name", "", "supplier name")
	fs.StringVar(&sf.phone, "phone", "", "contact number")
	fs.StringVar(&sf.email, "email", "", "email address")
	fs.StringVar(&sf.address, "address", "", "postal address")
	return sf
}

func (sf *supplierFlags) apply(s masterdata.Supplier, seen map[string]bool) masterdata.Supplier {
	if seen["name"] {
		s.Name = sf.name
	}
	if seen["phone"] {
		s.ContactNumber = sf.phone
	}
	if seen["email"] {
		s.Email = sf.email
	}
	if seen["address"] {
		s.Address = sf.address
	}
	return s
}

func runSuppliersList(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	suppliers := e.services.Catalog.Suppliers()
	if len(suppliers) == 0 {
		fmt.Fprintln(e.stdout, "No suppliers found.")
		return nil
	}
	tw := newTable(e.stdout, "ID", "NAME", "PHONE", "EMAIL", "ADDRESS")
	for _, s := range suppliers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.ContactNumber, s.Email, s.Address)
	}
	return tw.Flush()
}

func runSuppliersAdd(e *env, args []string) error {
	fs := newFlags(e, "suppliers add")
	sf := bindSupplierFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	added, err := e.services.Catalog.AddSupplier(e.ctx, sf.apply(masterdata.Supplier{ID: sf.id}, visited(fs)))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Supplier %d added.\n", added.ID)
	return nil
}

func runSuppliersUpdate(e *env, args []string) error {
	fs := newFlags(e, "suppliers update")
	sf := bindSupplierFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	seen := visited(fs)
	if !seen["id"] {
		return errUsage
	}
	current, err := e.services.Catalog.Supplier(sf.id)
	if err != nil {
		return err
	}
	updated, err := e.services.Catalog.UpdateSupplier(e.ctx, sf.id, sf.apply(current, seen))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Supplier %d updated.\n", updated.ID)
	return nil
}

func runSuppliersDelete(e *env, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}
	if err := e.services.Catalog.DeleteSupplier(e.ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Supplier %d deleted.\n", id)
	return nil
}
