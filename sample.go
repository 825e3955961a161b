package catalog

import "time"

// SampleEntries returns the built-in sample catalog used when no remote
// listing endpoint is configured. Each call returns fresh copies.
func SampleEntries() []*Entry {
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 9, 0, 0, 0, time.UTC) }
	return []*Entry{
		// Concepts are grouped by business domain.
		{ID: "concept-customer", Kind: KindConcept, Name: "Customer", Description: "A person or organization that buys goods or services.", Category: "Sales", Tags: []string{"party", "crm"}, UpdatedAt: day(1)},
		{ID: "concept-account", Kind: KindConcept, Name: "Account", Description: "A financial arrangement held by a customer with the business.", Category: "Finance", Tags: []string{"ledger"}, UpdatedAt: day(2)},
		{ID: "concept-order", Kind: KindConcept, Name: "Order", Description: "A request to purchase one or more products.", Category: "Sales", Tags: []string{"transaction"}, UpdatedAt: day(3)},
		{ID: "concept-product", Kind: KindConcept, Name: "Product", Description: "An item or service offered for sale.", Category: "Operations", Tags: []string{"inventory"}, UpdatedAt: day(4)},
		{ID: "concept-invoice", Kind: KindConcept, Name: "Invoice", Description: "A bill issued for a fulfilled order.", Category: "Finance", Tags: []string{"billing", "tax"}, UpdatedAt: day(5)},

		{ID: "domain-finance", Kind: KindDomain, Name: "Finance", Description: "Accounting, treasury and tax reporting.", Category: "Corporate", Tags: []string{"ledger", "tax"}, UpdatedAt: day(1)},
		{ID: "domain-sales", Kind: KindDomain, Name: "Sales", Description: "Pipeline, orders and customer relationships.", Category: "Commercial", Tags: []string{"crm"}, UpdatedAt: day(2)},
		{ID: "domain-operations", Kind: KindDomain, Name: "Operations", Description: "Supply chain, fulfilment and inventory.", Category: "Commercial", Tags: []string{"logistics"}, UpdatedAt: day(3)},
		{ID: "domain-hr", Kind: KindDomain, Name: "Human Resources", Description: "Workforce planning, payroll and benefits.", Category: "Corporate", Tags: []string{"people"}, UpdatedAt: day(4)},

		{ID: "kpi-revenue-growth", Kind: KindKPI, Name: "Revenue Growth", Description: "Period-over-period change in recognised revenue.", Category: "Finance", Tags: []string{"revenue"}, UpdatedAt: day(6)},
		{ID: "kpi-retention", Kind: KindKPI, Name: "Customer Retention Rate", Description: "Share of customers active in both periods.", Category: "Sales", Tags: []string{"churn"}, UpdatedAt: day(7)},
		{ID: "kpi-order-cycle", Kind: KindKPI, Name: "Order Cycle Time", Description: "Average time from order placement to delivery.", Category: "Operations", Tags: []string{"logistics"}, UpdatedAt: day(8)},
		{ID: "kpi-dso", Kind: KindKPI, Name: "Days Sales Outstanding", Description: "Average number of days to collect payment.", Category: "Finance", Tags: []string{"receivables"}, UpdatedAt: day(9)},

		{ID: "lob-retail", Kind: KindLineOfBusiness, Name: "Retail Banking", Description: "Deposits, cards and loans for individuals.", Category: "Banking", Tags: []string{"consumer"}, UpdatedAt: day(10)},
		{ID: "lob-commercial", Kind: KindLineOfBusiness, Name: "Commercial Banking", Description: "Lending and cash management for businesses.", Category: "Banking", Tags: []string{"corporate"}, UpdatedAt: day(11)},
		{ID: "lob-wealth", Kind: KindLineOfBusiness, Name: "Wealth Management", Description: "Advisory and investment services.", Category: "Investments", Tags: []string{"advisory"}, UpdatedAt: day(12)},

		{ID: "subject-reference", Kind: KindSubjectCategory, Name: "Reference Data", Description: "Code lists and classifications shared across systems.", Category: "Data Management", Tags: []string{"codes"}, UpdatedAt: day(13)},
		{ID: "subject-master", Kind: KindSubjectCategory, Name: "Master Data", Description: "Golden records for customers, products and suppliers.", Category: "Data Management", Tags: []string{"mdm"}, UpdatedAt: day(14)},
		{ID: "subject-transactional", Kind: KindSubjectCategory, Name: "Transactional Data", Description: "Events such as orders, payments and shipments.", Category: "Operational", Tags: []string{"events"}, UpdatedAt: day(15)},
	}
}
