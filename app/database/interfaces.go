package database

type ArticleRepository interface {
	ExistsByExternalID(externalID string) (bool, error)
	InsertBatch(articles []Article) (int, error)

	GetByID(id string) (*Article, error)
	List(opts ListOptions) ([]Article, int, error)
	GetArticleCount() (int, error)
}
