package records

import "gaji/internal/domain"

// SampleRecords returns a built-in excerpt of the Indonesia Salary
// Guide 2025, used when no salary guide file is available.
func SampleRecords() []domain.SalaryRecord {
	return []domain.SalaryRecord{
		{Industry: "Technology", Category: "Development", JobTitle: "Front-end Developer", MonthlySalary: 20},
		{Industry: "Technology", Category: "Development", JobTitle: "Back-end Developer", MonthlySalary: 25},
		{Industry: "Technology", Category: "Development", JobTitle: "Full-stack Developer", MonthlySalary: 30},
		{Industry: "Technology", Category: "Development", JobTitle: "Tech Lead", MonthlySalary: 40},
		{Industry: "Technology", Category: "Development", JobTitle: "Engineering Manager", MonthlySalary: 67},
		{Industry: "Technology", Category: "Analytics", JobTitle: "Data Analyst", MonthlySalary: 30},
		{Industry: "Technology", Category: "Analytics", JobTitle: "Data Scientist", MonthlySalary: 46},
		{Industry: "Technology", Category: "Analytics", JobTitle: "Data Science Manager", MonthlySalary: 72},
		{Industry: "Accounting & Finance", Category: "Accounting", JobTitle: "Senior Accountant", MonthlySalary: 25},
		{Industry: "Accounting & Finance", Category: "Accounting", JobTitle: "Accounting Manager", MonthlySalary: 45},
		{Industry: "Accounting & Finance", Category: "Accounting", JobTitle: "Finance Manager", MonthlySalary: 50},
		{Industry: "Accounting & Finance", Category: "Accounting", JobTitle: "Financial Controller", MonthlySalary: 80},
		{Industry: "Sales & Marketing", Category: "Consumer Products", JobTitle: "Marketing Executive", MonthlySalary: 12},
		{Industry: "Sales & Marketing", Category: "Consumer Products", JobTitle: "Brand Manager", MonthlySalary: 35},
		{Industry: "Sales & Marketing", Category: "Consumer Products", JobTitle: "Marketing Manager", MonthlySalary: 70},
		{Industry: "Sales & Marketing", Category: "Digital", JobTitle: "Digital Marketing Manager", MonthlySalary: 40},
		{Industry: "Human Resources", Category: "Generalist", JobTitle: "HR Generalist", MonthlySalary: 21},
		{Industry: "Human Resources", Category: "Generalist", JobTitle: "HR Manager", MonthlySalary: 35},
		{Industry: "Human Resources", Category: "Generalist", JobTitle: "HR Business Partner", MonthlySalary: 45},
		{Industry: "Human Resources", Category: "Generalist", JobTitle: "Head of HR", MonthlySalary: 100},
	}
}
