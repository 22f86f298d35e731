// Package finance holds the raw expense records that Spendgraph lays out.
//
// # Records
//
// A [Dataset] is one week of personal spending: the week start, the known
// [Category] records, the [Expense] records and an optional [Selection]. An
// expense belongs to zero or more categories by id. Amounts are
// [decimal.Decimal] so totals are exact and independent of summation order.
//
// # File Format
//
// Datasets are stored as indented JSON:
//
//	{
//	  "week": "2015-06-07T00:00:00Z",
//	  "categories": [{"id": "food", "name": "Food"}],
//	  "expenses": [
//	    {"id": "e1", "name": "Lunch", "amount": "12.50",
//	     "timestamp": "2015-06-08T12:30:00Z", "categories": ["food"]}
//	  ],
//	  "selection": {"type": "category", "id": "food"}
//	}
//
// Use [ReadDatasetFile] and [WriteDatasetFile] for files, [ReadDataset] and
// [WriteDataset] for streams.
//
// # Mutation
//
// [Dataset.AddExpenseToCategory] applies a reclassification produced by a
// drag-and-drop in the layout engine. It is idempotent. [Dataset.CategoryDetail]
// builds the per-category table shown next to the graph.
package finance
